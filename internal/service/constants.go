package service

const (
	// Unit conversions
	MetersPerMile = 1609.34
	MetersPerKm   = 1000.0
	KmPerMile     = MetersPerMile / MetersPerKm

	// Chart dimensions
	ChartHeight = 8
	ChartWidth  = 60
	// Series longer than this are averaged down before plotting
	ChartMaxPoints = 120

	// Fewer samples than this and charts are skipped
	MinChartPoints = 3
)

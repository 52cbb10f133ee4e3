package service

import (
	"github.com/guptarohit/asciigraph"
)

// Chart renders a series as an ASCII line chart. Long series are averaged
// down to ChartMaxPoints first. Returns "" when there is too little data.
func Chart(data []float64, caption string, width int) string {
	if len(data) < MinChartPoints {
		return ""
	}
	if width <= 0 {
		width = ChartWidth
	}

	data = downsample(data, ChartMaxPoints)

	opts := []asciigraph.Option{
		asciigraph.Height(ChartHeight),
		asciigraph.Width(width),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(data, opts...)
}

// downsample averages data into targetLen buckets. Unlike pace data,
// elevations may be zero or negative so every value is kept.
func downsample(data []float64, targetLen int) []float64 {
	if len(data) <= targetLen || targetLen <= 0 {
		return data
	}

	result := make([]float64, targetLen)
	ratio := float64(len(data)) / float64(targetLen)

	for i := 0; i < targetLen; i++ {
		start := int(float64(i) * ratio)
		end := int(float64(i+1) * ratio)
		if end > len(data) {
			end = len(data)
		}
		if end <= start {
			end = start + 1
		}

		sum := 0.0
		for j := start; j < end; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(end-start)
	}

	return result
}

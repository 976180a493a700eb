package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kass/go-gridcode/pkg/geoops"
	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
)

const configFile = "config.yaml"

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	codeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))
)

func init() {
	// Strip styling when output is piped
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		titleStyle = plain
		subtitleStyle = plain
		codeStyle = plain
		statStyle = plain
		dimStyle = plain
	}
}

func main() {
	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	fmt.Println(titleStyle.Render("🌍 Grid Code Demo"))

	demoEncoding(config)
	demoFormatting()
	demoPrecision()
	demoDistances(config)
	demoNearby(config)
	demoBatch(config)

	fmt.Println()
	fmt.Println(dimStyle.Render("Done."))
}

func demoEncoding(config Config) {
	fmt.Println(subtitleStyle.Render("\n── Encoding cities ──"))

	for _, city := range config.Cities {
		code, err := gridcode.Encode(city.Lat, city.Lon, false)
		if err != nil {
			log.Fatalf("Failed to encode %s: %v", city.Name, err)
		}

		lat, lon, _ := gridcode.Decode(code)
		fmt.Printf("  %-12s (%9.4f, %9.4f) → %s → (%9.4f, %9.4f)\n",
			city.Name, city.Lat, city.Lon, codeStyle.Render(code), lat, lon)
	}
}

func demoFormatting() {
	fmt.Println(subtitleStyle.Render("\n── Human-readable formatting ──"))

	code, _ := gridcode.Encode(40.7128, -74.0060, false)
	formatted, _ := gridcode.FormatForHumans(code)

	fmt.Printf("  Compact:   %s\n", codeStyle.Render(code))
	fmt.Printf("  Formatted: %s\n", codeStyle.Render(formatted))
	fmt.Printf("  Both decode identically: %v\n", gridcode.IsValidEncoding(formatted))
}

func demoPrecision() {
	fmt.Println(subtitleStyle.Render("\n── Precision by latitude ──"))

	for _, lat := range []float64{0, 30, 45, 60, 75} {
		p, err := gridcode.GetActualPrecision(lat, 0)
		if err != nil {
			log.Fatalf("Precision failed: %v", err)
		}
		fmt.Printf("  %2.0f°: lat ±%s  lon ±%s  total %s\n",
			lat,
			statStyle.Render(fmt.Sprintf("%.2fm", p.LatErrorM)),
			statStyle.Render(fmt.Sprintf("%.2fm", p.LonErrorM)),
			statStyle.Render(fmt.Sprintf("%.2fm", p.TotalErrorM)))
	}
}

func demoDistances(config Config) {
	fmt.Println(subtitleStyle.Render("\n── Distances between cities ──"))

	if len(config.Cities) < 2 {
		return
	}

	first, _ := gridcode.Encode(config.Cities[0].Lat, config.Cities[0].Lon, false)
	for _, city := range config.Cities[1:] {
		code, _ := gridcode.Encode(city.Lat, city.Lon, false)
		dist, err := gridcode.CalculateDistance(first, code)
		if err != nil {
			log.Fatalf("Distance failed: %v", err)
		}
		fmt.Printf("  %s → %-12s %s\n",
			config.Cities[0].Name, city.Name,
			statStyle.Render(fmt.Sprintf("%8.1f km", dist/1000)))
	}
}

func demoNearby(config Config) {
	fmt.Println(subtitleStyle.Render("\n── Nearby grid codes ──"))

	city := config.Cities[0]
	codes, err := geoops.FindNearby(city.Lat, city.Lon, config.Nearby.RadiusMeters, config.Nearby.MaxResults)
	if err != nil {
		log.Fatalf("Nearby search failed: %v", err)
	}

	fmt.Printf("  %d codes within %.0fm of %s:\n", len(codes), config.Nearby.RadiusMeters, city.Name)
	for _, code := range codes {
		fmt.Printf("    %s\n", codeStyle.Render(code))
	}
}

func demoBatch(config Config) {
	fmt.Println(subtitleStyle.Render("\n── Batch throughput ──"))

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	coords := make([]models.Coordinate, config.Batch.Points)
	for i := range coords {
		coords[i] = models.Coordinate{
			Lat: r.Float64()*180 - 90,
			Lon: r.Float64()*360 - 180,
		}
	}

	start := time.Now()
	codes, err := geoops.BatchEncode(coords, false)
	if err != nil {
		log.Fatalf("Batch encode failed: %v", err)
	}
	encodeTime := time.Since(start)

	start = time.Now()
	if _, err := geoops.BatchDecode(codes); err != nil {
		log.Fatalf("Batch decode failed: %v", err)
	}
	decodeTime := time.Since(start)

	fmt.Printf("  Encoded %d points in %v (%s)\n",
		len(coords), encodeTime,
		statStyle.Render(fmt.Sprintf("%.0f ops/sec", float64(len(coords))/encodeTime.Seconds())))
	fmt.Printf("  Decoded %d codes in %v (%s)\n",
		len(codes), decodeTime,
		statStyle.Render(fmt.Sprintf("%.0f ops/sec", float64(len(codes))/decodeTime.Seconds())))
}

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kass/go-gridcode/pkg/geoops"
	"github.com/kass/go-gridcode/pkg/gridcode"
)

var (
	humanReadable bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "gridcode",
	Short: "Fixed-precision geographic grid code codec",
	Long:  `Convert coordinates to 9-character grid codes and back, with uniform worldwide precision, plus distance and proximity utilities.`,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <lat> <lon>",
	Short: "Encode a coordinate to a grid code",
	Args:  cobra.ExactArgs(2),
	Run:   runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <code>",
	Short: "Decode a grid code back to a coordinate",
	Args:  cobra.ExactArgs(1),
	Run:   runDecode,
}

var distanceCmd = &cobra.Command{
	Use:   "distance <codeA> <codeB>",
	Short: "Great-circle distance between two grid codes",
	Args:  cobra.ExactArgs(2),
	Run:   runDistance,
}

var precisionCmd = &cobra.Command{
	Use:   "precision <lat> <lon>",
	Short: "Quantization error bounds at a location",
	Args:  cobra.ExactArgs(2),
	Run:   runPrecision,
}

var checkCmd = &cobra.Command{
	Use:   "check <code>",
	Short: "Check whether a string is a valid grid code",
	Args:  cobra.ExactArgs(1),
	Run:   runCheck,
}

var (
	searchRadius float64
	maxResults   int
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby <lat> <lon>",
	Short: "Grid codes within a radius of a center point",
	Long:  `Scan the area around a center point and list grid codes within the radius. Brute-force, intended for small radii.`,
	Args:  cobra.ExactArgs(2),
	Run:   runNearby,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	encodeCmd.Flags().BoolVarP(&humanReadable, "human", "H", false, "Format output as XXX-XXX-XXX")

	nearbyCmd.Flags().Float64VarP(&searchRadius, "radius", "r", 100.0, "Search radius in meters")
	nearbyCmd.Flags().IntVarP(&maxResults, "max", "m", 100, "Maximum number of results")

	rootCmd.AddCommand(encodeCmd, decodeCmd, distanceCmd, precisionCmd, checkCmd, nearbyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCoordinate(args []string) (float64, float64) {
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		log.Fatalf("Invalid latitude %q: %v", args[0], err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		log.Fatalf("Invalid longitude %q: %v", args[1], err)
	}
	return lat, lon
}

func runEncode(cmd *cobra.Command, args []string) {
	lat, lon := parseCoordinate(args)

	code, err := gridcode.Encode(lat, lon, humanReadable)
	if err != nil {
		log.Fatalf("Encode failed: %v", err)
	}

	fmt.Println(code)

	if verbose {
		precision, _ := gridcode.GetActualPrecision(lat, lon)
		fmt.Printf("Precision at this latitude: ±%.2fm lat, ±%.2fm lon (%.2fm total)\n",
			precision.LatErrorM, precision.LonErrorM, precision.TotalErrorM)
	}
}

func runDecode(cmd *cobra.Command, args []string) {
	lat, lon, err := gridcode.Decode(args[0])
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	fmt.Printf("%.6f, %.6f\n", lat, lon)
}

func runDistance(cmd *cobra.Command, args []string) {
	meters, err := gridcode.CalculateDistance(args[0], args[1])
	if err != nil {
		log.Fatalf("Distance failed: %v", err)
	}

	if meters >= 1000 {
		fmt.Printf("%.2f km\n", meters/1000)
	} else {
		fmt.Printf("%.1f m\n", meters)
	}
}

func runPrecision(cmd *cobra.Command, args []string) {
	lat, lon := parseCoordinate(args)

	precision, err := gridcode.GetActualPrecision(lat, lon)
	if err != nil {
		log.Fatalf("Precision failed: %v", err)
	}

	fmt.Printf("Latitude error:  %.2f m\n", precision.LatErrorM)
	fmt.Printf("Longitude error: %.2f m\n", precision.LonErrorM)
	fmt.Printf("Total error:     %.2f m\n", precision.TotalErrorM)
}

func runCheck(cmd *cobra.Command, args []string) {
	if gridcode.IsValidEncoding(args[0]) {
		fmt.Println("valid")
		return
	}
	fmt.Println("invalid")
	os.Exit(1)
}

func runNearby(cmd *cobra.Command, args []string) {
	lat, lon := parseCoordinate(args)

	codes, err := geoops.FindNearby(lat, lon, searchRadius, maxResults)
	if err != nil {
		log.Fatalf("Nearby search failed: %v", err)
	}

	fmt.Printf("Found %d grid codes within %.0fm:\n", len(codes), searchRadius)
	for _, code := range codes {
		if verbose {
			dLat, dLon, _ := gridcode.Decode(code)
			fmt.Printf("  %s  (%.6f, %.6f)\n", code, dLat, dLon)
		} else {
			fmt.Printf("  %s\n", code)
		}
	}
}

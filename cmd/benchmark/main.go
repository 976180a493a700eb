package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kass/go-gridcode/pkg/geoindex"
	"github.com/kass/go-gridcode/pkg/gridcode"
	"github.com/kass/go-gridcode/pkg/models"
	"github.com/kass/go-gridcode/pkg/postgis"
)

type BenchmarkResult struct {
	Name          string
	TotalOps      int
	TotalDuration time.Duration
	OpsPerSec     float64
	TotalResults  int64
	AvgResults    float64
}

func main() {
	var (
		benchType = flag.String("t", "codec", "Benchmark type: codec, radius, box, postgis")
		numOps    = flag.Int("n", 100000, "Number of operations to run")
		workers   = flag.Int("w", runtime.NumCPU(), "Number of concurrent workers")
		indexFile = flag.String("i", "data/index.gob", "Index file path (radius/box)")
		// Geographic bounds for random operations (default: roughly USA)
		minLat = flag.Float64("min-lat", 25.0, "Minimum latitude")
		maxLat = flag.Float64("max-lat", 49.0, "Maximum latitude")
		minLon = flag.Float64("min-lon", -125.0, "Minimum longitude")
		maxLon = flag.Float64("max-lon", -66.0, "Maximum longitude")
		// Query-specific parameters
		boxSize = flag.Float64("box-size", 1.0, "Box size in degrees (box queries)")
		radius  = flag.Float64("radius", 50000.0, "Radius in meters (radius queries)")
		// PostGIS connection
		pgHost = flag.String("pg-host", "localhost", "PostGIS host")
		pgPort = flag.Int("pg-port", 5432, "PostGIS port")
		pgUser = flag.String("pg-user", "postgres", "PostGIS user")
		pgPass = flag.String("pg-pass", "postgres", "PostGIS password")
		pgName = flag.String("pg-db", "geodb", "PostGIS database")
	)
	flag.Parse()

	bounds := bounds{*minLat, *maxLat, *minLon, *maxLon}

	var result BenchmarkResult
	switch *benchType {
	case "codec":
		result = benchmarkCodec(*numOps, *workers, bounds)
	case "radius":
		index := loadIndex(*indexFile)
		result = benchmarkRadiusQueries(index, *numOps, *workers, bounds, *radius)
	case "box":
		index := loadIndex(*indexFile)
		result = benchmarkBoxQueries(index, *numOps, *workers, bounds, *boxSize)
	case "postgis":
		store, err := postgis.NewStore(*pgHost, *pgUser, *pgPass, *pgName, *pgPort)
		if err != nil {
			log.Fatalf("Failed to connect to PostGIS: %v", err)
		}
		defer store.Close()
		result = benchmarkPostGIS(store, *numOps, *workers, bounds, *radius)
	default:
		log.Fatalf("Unknown benchmark type: %s", *benchType)
	}

	fmt.Println("\n=== Benchmark Results ===")
	fmt.Printf("Benchmark: %s\n", result.Name)
	fmt.Printf("Total Operations: %d\n", result.TotalOps)
	fmt.Printf("Total Duration: %v\n", result.TotalDuration)
	fmt.Printf("Operations/Second: %.0f\n", result.OpsPerSec)
	if result.TotalResults > 0 {
		fmt.Printf("Total Results: %d\n", result.TotalResults)
		fmt.Printf("Avg Results/Query: %.2f\n", result.AvgResults)
	}
	fmt.Printf("Workers Used: %d\n", *workers)
	fmt.Printf("CPU Cores: %d\n", runtime.NumCPU())
}

type bounds struct {
	minLat, maxLat, minLon, maxLon float64
}

func (b bounds) random(r *rand.Rand) (float64, float64) {
	lat := b.minLat + r.Float64()*(b.maxLat-b.minLat)
	lon := b.minLon + r.Float64()*(b.maxLon-b.minLon)
	return lat, lon
}

func loadIndex(indexFile string) *geoindex.CellIndex {
	log.Printf("Loading index from %s...\n", indexFile)
	index := geoindex.NewCellIndex()
	if err := index.LoadFromFile(indexFile); err != nil {
		log.Fatalf("Failed to load index: %v", err)
	}
	log.Printf("Index loaded with %d points\n", index.Count())
	return index
}

// benchmarkCodec measures encode+decode round trips per second
func benchmarkCodec(numOps, workers int, b bounds) BenchmarkResult {
	log.Printf("Running %d encode/decode round trips with %d workers...\n", numOps, workers)

	var failures atomic.Int64
	startTime := time.Now()

	opCh := make(chan int, numOps)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(rand.Int63()))

			for range opCh {
				lat, lon := b.random(r)

				code, err := gridcode.Encode(lat, lon, false)
				if err != nil {
					failures.Add(1)
					continue
				}
				if _, _, err := gridcode.Decode(code); err != nil {
					failures.Add(1)
				}
			}
		}()
	}

	for i := 0; i < numOps; i++ {
		opCh <- i
	}
	close(opCh)
	wg.Wait()

	totalDuration := time.Since(startTime)
	if n := failures.Load(); n > 0 {
		log.Printf("WARNING: %d round trips failed", n)
	}

	return BenchmarkResult{
		Name:          "codec round trip",
		TotalOps:      numOps,
		TotalDuration: totalDuration,
		OpsPerSec:     float64(numOps) / totalDuration.Seconds(),
	}
}

func benchmarkRadiusQueries(index *geoindex.CellIndex, numOps, workers int, b bounds, radius float64) BenchmarkResult {
	log.Printf("Running %d radius queries (%.0fm) with %d workers...\n", numOps, radius, workers)

	var totalResults atomic.Int64
	startTime := time.Now()

	opCh := make(chan int, numOps)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(rand.Int63()))

			for range opCh {
				lat, lon := b.random(r)
				results, err := index.QueryRadius(models.Coordinate{Lat: lat, Lon: lon}, radius)
				if err == nil {
					totalResults.Add(int64(len(results)))
				}
			}
		}()
	}

	for i := 0; i < numOps; i++ {
		opCh <- i
	}
	close(opCh)
	wg.Wait()

	totalDuration := time.Since(startTime)

	return BenchmarkResult{
		Name:          "index radius query",
		TotalOps:      numOps,
		TotalDuration: totalDuration,
		OpsPerSec:     float64(numOps) / totalDuration.Seconds(),
		TotalResults:  totalResults.Load(),
		AvgResults:    float64(totalResults.Load()) / float64(numOps),
	}
}

func benchmarkBoxQueries(index *geoindex.CellIndex, numOps, workers int, b bounds, boxSize float64) BenchmarkResult {
	log.Printf("Running %d box queries (%.1f°) with %d workers...\n", numOps, boxSize, workers)

	var totalResults atomic.Int64
	startTime := time.Now()

	opCh := make(chan int, numOps)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(rand.Int63()))

			for range opCh {
				lat, lon := b.random(r)
				box := models.BoundingBox{
					BottomLeft: models.Coordinate{Lat: lat, Lon: lon},
					TopRight:   models.Coordinate{Lat: lat + boxSize, Lon: lon + boxSize},
				}
				results, err := index.QueryBox(box)
				if err == nil {
					totalResults.Add(int64(len(results)))
				}
			}
		}()
	}

	for i := 0; i < numOps; i++ {
		opCh <- i
	}
	close(opCh)
	wg.Wait()

	totalDuration := time.Since(startTime)

	return BenchmarkResult{
		Name:          "index box query",
		TotalOps:      numOps,
		TotalDuration: totalDuration,
		OpsPerSec:     float64(numOps) / totalDuration.Seconds(),
		TotalResults:  totalResults.Load(),
		AvgResults:    float64(totalResults.Load()) / float64(numOps),
	}
}

// benchmarkPostGIS runs the same radius queries against PostGIS for a
// side-by-side comparison with the in-process index.
func benchmarkPostGIS(store *postgis.Store, numOps, workers int, b bounds, radius float64) BenchmarkResult {
	count, err := store.Count()
	if err != nil {
		log.Fatalf("Failed to count PostGIS points: %v", err)
	}
	log.Printf("Running %d PostGIS radius queries (%.0fm) against %d points with %d workers...\n",
		numOps, radius, count, workers)

	var totalResults atomic.Int64
	startTime := time.Now()

	opCh := make(chan int, numOps)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(rand.Int63()))

			for range opCh {
				lat, lon := b.random(r)
				results, err := store.QueryRadius(models.Coordinate{Lat: lat, Lon: lon}, radius)
				if err == nil {
					totalResults.Add(int64(len(results)))
				}
			}
		}()
	}

	for i := 0; i < numOps; i++ {
		opCh <- i
	}
	close(opCh)
	wg.Wait()

	totalDuration := time.Since(startTime)

	return BenchmarkResult{
		Name:          "postgis radius query",
		TotalOps:      numOps,
		TotalDuration: totalDuration,
		OpsPerSec:     float64(numOps) / totalDuration.Seconds(),
		TotalResults:  totalResults.Load(),
		AvgResults:    float64(totalResults.Load()) / float64(numOps),
	}
}

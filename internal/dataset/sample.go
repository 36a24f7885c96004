package dataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

const (
	SampleSourceID = "sample"
	SampleName     = "Sample data"

	DefaultSampleDays        = 90
	DefaultSampleSeed uint64 = 42
)

var (
	SampleCategories = []string{"Electronics", "Clothing", "Food & Beverage", "Home & Garden", "Sports"}
	SampleRegions    = []string{"North", "South", "East", "West"}
)

// GenerateSample builds a synthetic dataset with one record per day,
// category and region for the days+1 calendar dates ending on now's date.
// Output depends only on the date of now, days and seed.
func GenerateSample(now time.Time, days int, seed uint64) *models.Dataset {
	if days < 0 {
		days = 0
	}
	src := rand.NewPCG(seed, seed)
	rng := rand.New(src)
	noise := distuv.Normal{Mu: 0, Sigma: 200, Src: src}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	records := make([]models.Record, 0, (days+1)*len(SampleCategories)*len(SampleRegions))
	for i := days; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		season := math.Sin(float64(day.YearDay())/365*2*math.Pi) * 500
		for _, category := range SampleCategories {
			for _, region := range SampleRegions {
				sales := float64(1000+rng.IntN(4000)) + season + noise.Rand()
				records = append(records, models.Record{
					Date:      day.Format(models.DateLayout),
					Category:  category,
					Region:    region,
					Sales:     math.Max(sales, 0),
					Units:     50 + rng.IntN(150),
					Customers: 20 + rng.IntN(80),
				})
			}
		}
	}

	return &models.Dataset{
		SourceID: SampleSourceID,
		Name:     SampleName,
		Records:  records,
		LoadedAt: now,
	}
}

// gendata fabricates booking records for demos and load tests: mostly clean
// rows plus a configurable share of corrupted ones that should trip the rule
// validators.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var airportCodes = []string{"US", "IN", "DE", "FR", "GB", "JP", "BR", "AU"}

var cabinClasses = []string{"A", "B", "C", "D", "E", "F", "ECONOMY", "BUSINESS", "FIRST"}

var brokenNames = []string{"Test User", "John Doe", "Admin", "Null", "Xxxxx Yyyy", "J0hn D@e"}

func main() {
	count := flag.Int("count", 100, "number of records to generate")
	corrupt := flag.Float64("corrupt", 0.2, "share of corrupted records [0,1]")
	seed := flag.Uint64("seed", 0, "random seed (0 = nondeterministic)")
	out := flag.String("out", "", "output CSV path (default stdout)")
	flag.Parse()

	faker := gofakeit.New(*seed)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create output:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	_ = cw.Write([]string{"NAME", "DATE", "IATA", "SEAT", "CABIN"})
	for i := 0; i < *count; i++ {
		if faker.Float64Range(0, 1) < *corrupt {
			_ = cw.Write(corruptRecord(faker))
		} else {
			_ = cw.Write(cleanRecord(faker))
		}
	}
}

func cleanRecord(f *gofakeit.Faker) []string {
	birth := f.DateRange(
		time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Now().AddDate(-13, 0, 0),
	)
	seat := fmt.Sprintf("%d%c", f.Number(1, 60), 'A'+rune(f.Number(0, 5)))
	return []string{
		f.FirstName() + " " + f.LastName(),
		birth.Format("2006-01-02"),
		f.RandomString(airportCodes),
		seat,
		f.RandomString(cabinClasses),
	}
}

func corruptRecord(f *gofakeit.Faker) []string {
	rec := cleanRecord(f)
	switch f.Number(0, 5) {
	case 0:
		rec[0] = f.RandomString(brokenNames)
	case 1:
		rec[1] = time.Now().AddDate(f.Number(1, 50), 0, 0).Format("2006-01-02")
	case 2:
		rec[1] = f.Word() // unparsable date
	case 3:
		rec[2] = "ZZ" // unknown airport code
	case 4:
		rec[3] = fmt.Sprintf("%d", f.Number(1000, 9999)) // numeric, too long
	default:
		rec[4] = fmt.Sprintf("%d", f.Number(1, 9)) // digit cabin
	}
	return rec
}

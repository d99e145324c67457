package generate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"

	"brc/radix"

	"github.com/pingcap/go-ycsb/pkg/generator"
)

// Config describes a synthetic measurements file.
type Config struct {
	Rows     int
	Stations int
	Seed     int64
	// CRLF ends lines with "\r\n" instead of "\n".
	CRLF bool
}

type Station struct {
	Name string
	// Mean is in degrees.
	Mean float64
}

var baseStations = []Station{
	{"Abha", 18.0}, {"Abidjan", 26.0}, {"Accra", 26.4}, {"Addis Ababa", 16.0},
	{"Adelaide", 17.3}, {"Alexandria", 20.0}, {"Amsterdam", 10.2}, {"Anchorage", 2.8},
	{"Athens", 19.2}, {"Baghdad", 22.77}, {"Bangkok", 28.6}, {"Barcelona", 18.2},
	{"Beirut", 20.9}, {"Berlin", 10.3}, {"Bern", 9.7}, {"Bergen", 7.7},
	{"Boston", 10.9}, {"Bratislava", 10.5}, {"Brisbane", 21.4}, {"Cairo", 21.4},
	{"Cape Town", 16.2}, {"Chicago", 9.8}, {"Dakar", 24.0}, {"Dublin", 9.8},
	{"Hamburg", 9.7}, {"Hamilton", 13.8}, {"Hanoi", 23.6}, {"Helsinki", 5.9},
	{"Istanbul", 13.9}, {"Jakarta", 26.7}, {"Kyiv", 8.4}, {"Lagos", 26.8},
	{"Lima", 19.6}, {"Lisbon", 17.5}, {"London", 11.3}, {"Madrid", 15.0},
	{"Oslo", 5.7}, {"Osaka", 16.6}, {"Ottawa", 6.6}, {"Reykjavík", 4.3},
	{"San Francisco", 14.6}, {"San Jose", 16.4}, {"San Juan", 27.2}, {"Yakutsk", -8.8},
}

// Stations returns n distinct stations. Past the built-in list, names are
// derived from existing ones so that many of them share a prefix.
func Stations(n int) []Station {
	stations := make([]Station, n)
	for i := range stations {
		base := baseStations[i%len(baseStations)]
		if round := i / len(baseStations); round > 0 {
			base.Name = fmt.Sprintf("%s %d", base.Name, round)
		}
		stations[i] = base
	}
	return stations
}

// Write generates cfg.Rows records into w. Station popularity follows a
// zipfian distribution and temperatures are normally distributed around
// the station mean, clamped to [-99.9, 99.9].
func Write(w io.Writer, cfg Config) error {
	if cfg.Stations < 1 {
		return fmt.Errorf("unable to generate with %d stations", cfg.Stations)
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	stations := Stations(cfg.Stations)
	zipf := generator.NewScrambledZipfian(0, int64(len(stations)-1), generator.ZipfianConstant)

	bw := bufio.NewWriterSize(w, 1024*1024)
	line := make([]byte, 0, 128)
	for n := 0; n < cfg.Rows; n++ {
		s := stations[zipf.Next(r)]
		temp := int64(math.Round((s.Mean + r.NormFloat64()*10) * 10))
		temp = min(max(temp, -999), 999)

		line = append(line[:0], s.Name...)
		line = append(line, ';')
		line = radix.AppendTenths(line, temp)
		if cfg.CRLF {
			line = append(line, '\r')
		}
		line = append(line, '\n')

		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("unable to write record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to flush records: %w", err)
	}
	return nil
}

package posterior

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

type summaryDoc struct {
	Title     string   `json:"title"`
	LowerProb float64  `json:"lower_prob"`
	UpperProb float64  `json:"upper_prob"`
	BurnIn    int      `json:"burn_in"`
	RowsUsed  int      `json:"rows_used"`
	Bins      []binDoc `json:"bins"`
}

type binDoc struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Mean  float64 `json:"mean"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// WriteCSV writes one row per bin with the bin edges, the posterior
// mean, and the credible band.
func WriteCSV(w io.Writer, s *Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"bin", "left", "right", "mean", "lower", "upper"}); err != nil {
		return errors.Wrap(err, "Could not write summary header")
	}

	for k := range s.Mean {
		rec := []string{
			strconv.Itoa(k),
			fmtFloat(s.Grid.Bound(k)),
			fmtFloat(s.Grid.Bound(k + 1)),
			fmtFloat(s.Mean[k]),
			fmtFloat(s.Lower[k]),
			fmtFloat(s.Upper[k]),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "Could not write summary row %d", k)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "Could not flush summary")
}

// WriteJSON writes the whole summary as a single JSON document.
func WriteJSON(w io.Writer, s *Summary) error {
	doc := summaryDoc{
		Title:     s.Title,
		LowerProb: s.LowerProb,
		UpperProb: s.UpperProb,
		BurnIn:    s.BurnIn,
		RowsUsed:  s.RowsUsed,
		Bins:      make([]binDoc, len(s.Mean)),
	}

	for k := range s.Mean {
		doc.Bins[k] = binDoc{
			Left:  s.Grid.Bound(k),
			Right: s.Grid.Bound(k + 1),
			Mean:  s.Mean[k],
			Lower: s.Lower[k],
			Upper: s.Upper[k],
		}
	}

	buf, err := sonic.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "Could not marshal summary")
	}
	buf = append(buf, '\n')

	_, err = w.Write(buf)
	return errors.Wrap(err, "Could not write summary")
}

// WriteFile writes the summary to path, choosing the format from the
// extension: .json gets JSON, everything else CSV.
func WriteFile(path string, s *Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Could not create summary file %s", path)
	}
	defer f.Close()

	if filepath.Ext(path) == ".json" {
		return WriteJSON(f, s)
	}
	return WriteCSV(f, s)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

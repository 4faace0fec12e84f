package driver

import (
	"encoding/json"
	"fmt"

	"reprint/internal/diag"
	"reprint/internal/observ"
)

// timingNote is the JSON body of the OBS timing diagnostic.
type timingNote struct {
	Path string `json:"path,omitempty"`
	observ.Report
}

// reportTimings records the phase breakdown of one rewrite as an info
// diagnostic. A full bag grows by one: the timing note is never the entry
// that gets dropped.
func reportTimings(bag *diag.Bag, path string, rep observ.Report) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(timingNote{Path: path, Report: rep})
	if err != nil {
		return
	}
	msg := fmt.Sprintf("rewrite took %.2f ms over %d phases", rep.TotalMS, len(rep.Phases))
	d := diag.New(diag.SevInfo, diag.ObsTimings, zeroRange, msg).WithNote(zeroRange, string(data))
	d.Path = path
	if bag.Len() < int(bag.Cap()) {
		bag.Add(d)
		return
	}
	extra := diag.NewBag(1)
	extra.Add(d)
	bag.Merge(extra)
}

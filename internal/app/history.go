package app

import (
	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/solution"
	"github.com/ayusman/cubescan/internal/store"
)

// history records scans in the store. Every method is a no-op without a
// store, and write failures are logged rather than returned: losing a
// history row never stops a scan.
type history struct {
	store  *store.Store
	logger *logging.Logger
}

func newHistory(s *store.Store, logger *logging.Logger) *history {
	return &history{store: s, logger: logger.Component("history")}
}

// begin creates a scan row and returns its ID, or "" without a store.
func (h *history) begin() string {
	if h.store == nil {
		return ""
	}
	sc := &store.Scan{Status: store.ScanStatusScanning}
	if err := h.store.Scans().Create(sc); err != nil {
		h.logger.Warn("failed to record scan", "error", err)
		return ""
	}
	h.logger.Debug("scan recorded", "scan_id", sc.ID)
	return sc.ID
}

func (h *history) face(scanID string, slot cube.Slot, r cube.Reading, seq int) {
	if h.store == nil || scanID == "" {
		return
	}
	err := h.store.Faces().Add(&store.Face{
		ScanID:   scanID,
		Slot:     slot.String(),
		Colors:   r.String(),
		Sequence: seq,
	})
	if err != nil {
		h.logger.Warn("failed to record face", "scan_id", scanID, "slot", slot.String(), "error", err)
	}
}

// faces records all six readings of a complete cube string in assembly
// order.
func (h *history) faces(scanID, cubeString string) {
	if len(cubeString) != cube.FaceletCount {
		return
	}
	for i, slot := range cube.Slots {
		r, err := cube.ParseReading(cubeString[i*cube.FaceletsPerFace : (i+1)*cube.FaceletsPerFace])
		if err != nil {
			continue
		}
		h.face(scanID, slot, r, i+1)
	}
}

// abort marks an unfinished scan as failed.
func (h *history) abort(scanID string) {
	h.update(scanID, &store.Scan{ID: scanID, Status: store.ScanStatusFailed})
}

// finish stores the outcome of solving a scanned cube.
func (h *history) finish(scanID string, res *Result, solveErr error) {
	if h.store == nil || scanID == "" {
		return
	}

	sc := &store.Scan{
		ID:         scanID,
		CubeString: res.CubeString,
		Translated: res.Translated,
		Status:     store.ScanStatusSolved,
	}
	sol := &store.Solution{
		ScanID:    scanID,
		Raw:       res.Raw,
		Notation:  solution.Notation(res.Moves),
		MoveCount: len(res.Moves),
	}
	if solveErr != nil {
		sc.Status = store.ScanStatusFailed
		sol.Error = solveErr.Error()
	}

	h.update(scanID, sc)
	if err := h.store.Solutions().Save(sol); err != nil {
		h.logger.Warn("failed to record solution", "scan_id", scanID, "error", err)
	}
}

func (h *history) update(scanID string, sc *store.Scan) {
	if h.store == nil || scanID == "" {
		return
	}
	if err := h.store.Scans().Update(sc); err != nil {
		h.logger.Warn("failed to update scan", "scan_id", scanID, "error", err)
	}
}

package model

import (
	"strconv"

	"github.com/samber/lo"
)

// SeatPrefix starts the label of every single seat.
const SeatPrefix = "S"

// NextSeatLabel returns a fresh label S1, S2, ... for a single seat. The
// sequence only moves forward, so labels freed by a delete or an undo are
// not handed out again, and labels already present are skipped.
func (d *Document) NextSeatLabel() string {
	used := d.seatLabels()
	for {
		d.seatSeq++
		label := SeatPrefix + strconv.Itoa(d.seatSeq)
		if !used[label] {
			return label
		}
	}
}

// NextRow returns a fresh row name A, B, ... Z, AA, AB, ... together with
// the labels of its n seats (A1..An). Names already carried by seats, or
// whose labels would clash with existing ones, are skipped.
func (d *Document) NextRow(n int) (string, []string) {
	used := d.seatLabels()
	rows := lo.SliceToMap(d.Seats.Items(), func(s *Seat) (string, bool) { return s.Row, true })
	for {
		d.rowSeq++
		name := RowName(d.rowSeq)
		if rows[name] {
			continue
		}
		labels := make([]string, n)
		clash := false
		for i := range labels {
			labels[i] = name + strconv.Itoa(i+1)
			clash = clash || used[labels[i]]
		}
		if !clash {
			return name, labels
		}
	}
}

// RowName is the spreadsheet-style name of the n-th row: 1 is A, 26 is Z,
// 27 is AA.
func RowName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func (d *Document) seatLabels() map[string]bool {
	return lo.SliceToMap(d.Seats.Items(), func(s *Seat) (string, bool) { return s.Label, true })
}

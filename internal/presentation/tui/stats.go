package tui

import (
	"io"
	"strconv"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/olekukonko/tablewriter"
)

var _ ports.StatsSink = (*StatsTable)(nil)

// StatsTable prints tree statistics as a table. Zero stats from a clear are skipped.
type StatsTable struct {
	mu sync.Mutex
	w  io.Writer
}

func NewStatsTable(w io.Writer) *StatsTable {
	return &StatsTable{w: w}
}

func (s *StatsTable) PublishStats(stats domain.Stats) {
	if stats.Count == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	last := "-"
	if stats.LastValue != nil {
		last = strconv.Itoa(*stats.LastValue)
	}

	table := tablewriter.NewWriter(s.w)
	table.SetHeader([]string{"Nodes", "Height", "Leaves", "Balance", "Last Inserted"})
	table.Append([]string{
		strconv.Itoa(stats.Count),
		strconv.Itoa(stats.Height),
		strconv.Itoa(stats.LeafCount),
		strconv.Itoa(stats.BalanceFactor),
		last,
	})
	table.Render()
}

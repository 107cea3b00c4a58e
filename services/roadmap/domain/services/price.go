package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// ParsePrice converts a price kept as text into a number. It accepts plain
// numbers ("1500", "1500.50"), Brazilian formatting ("1.500,50", "R$ 1.500,50")
// and US formatting ("1,500.50"). When both separators appear the last one is
// the decimal mark. A lone comma is decimal; a lone dot followed by exactly
// three digits is a thousands separator.
func ParsePrice(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "R$")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || (lastDot > 0 && s[:lastDot] != "0" && len(s)-lastDot-1 == 3) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BudgetTotals sums parsable prices: Planned over every item, Committed over
// CONTRACTED and COMPLETED items. Empty or unparsable prices count as Unpriced.
func BudgetTotals(items []models.RoadmapItem) models.Budget {
	var b models.Budget
	for _, it := range items {
		v, ok := ParsePrice(it.Price)
		if !ok {
			b.Unpriced++
			continue
		}
		b.Planned += v
		if it.Status == models.StatusContracted || it.Status == models.StatusCompleted {
			b.Committed += v
		}
	}
	return b
}

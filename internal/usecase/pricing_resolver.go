package usecase

import (
	"time"

	"venue-settlement/internal/data/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const minutesPerDay = 24 * 60

// HolidayCalendar is an external collaborator. When nil, HOLIDAY rules never
// match.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

type holidayCalendar struct {
	dates map[string]struct{}
}

// NewHolidayCalendar builds a calendar from YYYY-MM-DD dates. Unparseable
// entries are dropped.
func NewHolidayCalendar(dates []string) HolidayCalendar {
	set := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			continue
		}
		set[date] = struct{}{}
	}
	return &holidayCalendar{dates: set}
}

func (c *holidayCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.dates[date.Format("2006-01-02")]
	return ok
}

// ResolveRate picks the effective hourly rate for a room from a set of
// potentially overlapping pricing rules. startMin/endMin are minutes since
// midnight; a window whose end is at or before its start wraps past midnight.
//
// Selection: date-matching rules whose time window overlaps the query keep
// competing; highest priority wins, specific-date rules beat recurring rules
// on a priority tie, and a residual tie is a configuration conflict resolved
// deterministically by lowest rule ID (and logged). With no candidates the
// base rate applies.
func ResolveRate(rules []*entity.RoomPricingRule, date time.Time, startMin, endMin int, baseRate decimal.Decimal, holidays HolidayCalendar, log *zap.Logger) decimal.Decimal {
	var candidates []*entity.RoomPricingRule

	for _, rule := range rules {
		if !ruleMatchesDate(rule, date, holidays) {
			continue
		}

		ruleStart, err := entity.ParseClock(rule.StartTime)
		if err != nil {
			log.Warn("Skipping pricing rule with invalid start time",
				zap.String("rule_id", rule.ID.String()),
				zap.String("start_time", rule.StartTime),
			)
			continue
		}
		ruleEnd, err := entity.ParseClock(rule.EndTime)
		if err != nil {
			log.Warn("Skipping pricing rule with invalid end time",
				zap.String("rule_id", rule.ID.String()),
				zap.String("end_time", rule.EndTime),
			)
			continue
		}

		if !windowsOverlap(ruleStart, ruleEnd, startMin, endMin) {
			continue
		}

		candidates = append(candidates, rule)
	}

	if len(candidates) == 0 {
		return baseRate
	}

	selected := selectRule(candidates, log)
	return selected.PricePerHour
}

func ruleMatchesDate(rule *entity.RoomPricingRule, date time.Time, holidays HolidayCalendar) bool {
	if rule.IsSpecificDate() {
		day := truncateToDay(date)
		return !day.Before(truncateToDay(*rule.StartDate)) && !day.After(truncateToDay(*rule.EndDate))
	}

	switch rule.DayType {
	case entity.DayTypeEveryday:
		return true
	case entity.DayTypeWeekday:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case entity.DayTypeWeekend:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case entity.DayTypeHoliday:
		return holidays != nil && holidays.IsHoliday(date)
	default:
		return false
	}
}

// windowsOverlap checks two half-open [start,end) time-of-day windows,
// either of which may wrap past midnight.
func windowsOverlap(s1, e1, s2, e2 int) bool {
	if e1 <= s1 {
		e1 += minutesPerDay
	}
	if e2 <= s2 {
		e2 += minutesPerDay
	}

	// A wrapped window occupies the tail of one day and the head of the
	// next, so compare against the other window shifted a day either way.
	for _, shift := range []int{-minutesPerDay, 0, minutesPerDay} {
		if s1 < e2+shift && s2+shift < e1 {
			return true
		}
	}
	return false
}

func selectRule(candidates []*entity.RoomPricingRule, log *zap.Logger) *entity.RoomPricingRule {
	maxPriority := candidates[0].Priority
	for _, rule := range candidates[1:] {
		if rule.Priority > maxPriority {
			maxPriority = rule.Priority
		}
	}

	var top []*entity.RoomPricingRule
	for _, rule := range candidates {
		if rule.Priority == maxPriority {
			top = append(top, rule)
		}
	}

	// More specific wins on a priority tie.
	if len(top) > 1 {
		var specific []*entity.RoomPricingRule
		for _, rule := range top {
			if rule.IsSpecificDate() {
				specific = append(specific, rule)
			}
		}
		if len(specific) > 0 {
			top = specific
		}
	}

	selected := top[0]
	for _, rule := range top[1:] {
		if rule.ID.String() < selected.ID.String() {
			selected = rule
		}
	}

	if len(top) > 1 {
		log.Warn("Ambiguous pricing rules share priority and specificity, resolved by lowest ID",
			zap.String("selected_rule_id", selected.ID.String()),
			zap.Int("priority", maxPriority),
			zap.Int("tied_rules", len(top)),
		)
	}

	return selected
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package services

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// ChannelSelection is the current portfolio/property/channel picks on a log
// entry row, as names. Correction runs after any change to the portfolio or
// channel selection.
type ChannelSelection struct {
	PortfolioName string
	PropertyName  string
	ChannelName   string
}

// CorrectionRule pairs a predicate with a display name so firings can be
// reported to the user. Every rule's correction is the same: force the
// channel to "Direct".
type CorrectionRule struct {
	Name    string
	Matches func(sel ChannelSelection) bool
}

// channelCorrectionRules is evaluated in order with early exit. The order is
// load-bearing: the specific-case rules must fire before the generic
// name-equality rule even when both would match.
var channelCorrectionRules = []CorrectionRule{
	{
		Name: "Elewana Collection bookings through Cheli & Peacock are direct",
		Matches: func(sel ChannelSelection) bool {
			return namesEqual(sel.PortfolioName, "Elewana Collection") &&
				namesEqual(sel.ChannelName, "Cheli & Peacock")
		},
	},
	{
		Name: "Safari Collection properties booked through their own channel are direct",
		Matches: func(sel ChannelSelection) bool {
			if !namesEqual(sel.ChannelName, "The Safari Collection") {
				return false
			}
			for _, p := range []string{"Sasaab", "Solio Lodge", "Sala's Camp"} {
				if namesEqual(sel.PropertyName, p) {
					return true
				}
			}
			return false
		},
	},
	{
		Name: "Wilderness portfolio bookings through Wilderness Safaris are direct",
		Matches: func(sel ChannelSelection) bool {
			return namesEqual(sel.PortfolioName, "Wilderness") &&
				namesEqual(sel.ChannelName, "Wilderness Safaris")
		},
	},
	{
		Name: "Channel matching the portfolio name is direct",
		Matches: func(sel ChannelSelection) bool {
			return sel.PortfolioName != "" && namesEqual(sel.ChannelName, sel.PortfolioName)
		},
	},
}

// CorrectChannel runs the ordered rule chain against the selection. When a
// rule fires it returns the catalog channel named "Direct" (case-insensitive
// lookup) and the rule's name so the caller can raise a notice. A nil
// channel with fired=true means the catalog has no Direct channel to switch
// to, in which case the selection is left alone.
func CorrectChannel(sel ChannelSelection, channels []model.BookingChannel, logger *zap.Logger) (*model.BookingChannel, string, bool) {
	// Already direct: nothing to correct.
	if namesEqual(sel.ChannelName, "Direct") {
		return nil, "", false
	}

	for _, rule := range channelCorrectionRules {
		if !rule.Matches(sel) {
			continue
		}
		direct := findDirectChannel(channels)
		if direct == nil {
			logger.Warn("Channel correction matched but no Direct channel exists",
				zap.String("rule", rule.Name))
			return nil, rule.Name, true
		}
		logger.Info("Booking channel auto-corrected",
			zap.String("rule", rule.Name),
			zap.String("from", sel.ChannelName),
			zap.String("to", direct.Name))
		return direct, rule.Name, true
	}
	return nil, "", false
}

func findDirectChannel(channels []model.BookingChannel) *model.BookingChannel {
	for i := range channels {
		if namesEqual(channels[i].Name, "Direct") {
			return &channels[i]
		}
	}
	return nil
}

// namesEqual compares ignoring case and surrounding/internal extra
// whitespace.
func namesEqual(a, b string) bool {
	return strings.EqualFold(collapseSpace(a), collapseSpace(b))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

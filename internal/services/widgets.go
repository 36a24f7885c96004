package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/dto"
	"github.com/GregMSThompson/sales-dashboard/internal/errs"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
)

// applyWidgets resolves the live value of each sidebar widget and writes
// the result verbatim into the state's filters and widget cache.
//
// Each widget takes the value the client reported, else its cached value
// if that is still valid for the domain, else the reconciled filter. A
// reported value outside the widget's options is rejected.
func applyWidgets(sig models.Signature, state *models.SessionState, req dto.RenderRequest) error {
	defaults := sig.FullSelection()
	if state.Filters != nil {
		defaults = state.Filters.Clone()
	}
	var cached *models.FilterSelection
	if state.Widgets != nil {
		c := state.Widgets.Clone()
		cached = &c
	}

	live := models.FilterSelection{}

	start, end, err := dateWidget(sig, req, cached, defaults)
	if err != nil {
		return err
	}
	live.Start, live.End = start, end

	live.Categories, err = multiselectWidget("categories", sig.Categories, req.Categories, cachedList(cached, true), defaults.Categories)
	if err != nil {
		return err
	}
	live.Regions, err = multiselectWidget("regions", sig.Regions, req.Regions, cachedList(cached, false), defaults.Regions)
	if err != nil {
		return err
	}

	widgets := live.Clone()
	state.Filters = &live
	state.Widgets = &widgets
	return nil
}

func dateWidget(sig models.Signature, req dto.RenderRequest, cached *models.FilterSelection, defaults models.FilterSelection) (string, string, error) {
	if req.Start != nil || req.End != nil {
		start, end := defaults.Start, defaults.End
		if req.Start != nil {
			start = strings.TrimSpace(*req.Start)
		}
		if req.End != nil {
			end = strings.TrimSpace(*req.End)
		}
		for _, d := range []string{start, end} {
			if _, err := time.Parse(models.DateLayout, d); err != nil {
				return "", "", errs.NewValidationError(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", d))
			}
			if d < sig.MinDate || d > sig.MaxDate {
				return "", "", errs.NewValidationError(fmt.Sprintf(
					"date %s is outside the available range %s to %s", d, sig.MinDate, sig.MaxDate))
			}
		}
		if start > end {
			return "", "", errs.NewValidationError("start date must not be after end date")
		}
		return start, end, nil
	}

	if cached != nil && cached.Start != "" && cached.End != "" &&
		cached.Start >= sig.MinDate && cached.End <= sig.MaxDate && cached.Start <= cached.End {
		return cached.Start, cached.End, nil
	}
	return defaults.Start, defaults.End, nil
}

func multiselectWidget(name string, options []string, reported *[]string, cached []string, defaults []string) ([]string, error) {
	if reported != nil {
		out := make([]string, 0, len(*reported))
		for _, v := range *reported {
			if !slices.Contains(options, v) {
				return nil, errs.NewValidationError(fmt.Sprintf("%q is not an available option for %s", v, name))
			}
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
		return out, nil
	}

	if len(cached) > 0 && subset(cached, options) {
		return slices.Clone(cached), nil
	}
	return slices.Clone(defaults), nil
}

func cachedList(cached *models.FilterSelection, categories bool) []string {
	if cached == nil {
		return nil
	}
	if categories {
		return cached.Categories
	}
	return cached.Regions
}

func subset(values, options []string) bool {
	for _, v := range values {
		if !slices.Contains(options, v) {
			return false
		}
	}
	return true
}

func widgetOptions(sig models.Signature, values models.FilterSelection) dto.WidgetOptions {
	return dto.WidgetOptions{
		MinDate:    sig.MinDate,
		MaxDate:    sig.MaxDate,
		Categories: slices.Clone(sig.Categories),
		Regions:    slices.Clone(sig.Regions),
		Values:     values.Clone(),
	}
}

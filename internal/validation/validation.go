// Package validation turns raw receipt fields into validated domain
// values. Each validator either returns a typed value or a named error;
// there are no partial results.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"receipts/internal/models"
)

// ErrInvalidReceipt is the base error every field failure wraps. Callers
// that do not care which field failed can match on this alone.
var ErrInvalidReceipt = errors.New("invalid receipt")

// Per-field failure reasons. The HTTP boundary collapses all of these to
// a single response, but each one stays distinguishable with errors.Is.
var (
	ErrBadDate  = fmt.Errorf("%w: purchase date", ErrInvalidReceipt)
	ErrBadTime  = fmt.Errorf("%w: purchase time", ErrInvalidReceipt)
	ErrBadTotal = fmt.Errorf("%w: total", ErrInvalidReceipt)
	ErrBadItems = fmt.Errorf("%w: items", ErrInvalidReceipt)
)

var (
	dateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe        = regexp.MustCompile(`^\d{2}:\d{2}$`)
	moneyRe       = regexp.MustCompile(`^\d+\.\d{2}$`)
	descriptionRe = regexp.MustCompile(`^[\w\s\-]+$`)
)

// RawItem is one unvalidated item entry as submitted by the caller.
type RawItem struct {
	ShortDescription string
	Price            string
}

// ValidateRetailer accepts any string, including empty and symbol-only
// values. Non-string JSON values never reach this point; they fail at
// body decoding.
func ValidateRetailer(retailer string) (string, error) {
	return retailer, nil
}

// ValidateDate checks for the YYYY-MM-DD shape and that the combination
// denotes a real calendar date (month 13 or Feb 30 are rejected, Feb 29
// only passes in leap years).
func ValidateDate(date string) (string, error) {
	if !dateRe.MatchString(date) {
		return "", ErrBadDate
	}
	parts := strings.Split(date, "-")
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	if month < 1 || month > 12 {
		return "", ErrBadDate
	}
	if day < 1 || day > daysInMonth(year, month) {
		return "", ErrBadDate
	}
	return date, nil
}

// ValidateTime checks for the HH:MM shape with an hour in [0,23] and a
// minute in [0,59].
func ValidateTime(t string) (string, error) {
	if !timeRe.MatchString(t) {
		return "", ErrBadTime
	}
	parts := strings.Split(t, ":")
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	if hour > 23 || minute > 59 {
		return "", ErrBadTime
	}
	return t, nil
}

// ValidateTotal checks for one or more digits, a literal decimal point
// and exactly two fractional digits. Leading zeros are fine; signs and
// thousands separators are not.
func ValidateTotal(total string) (string, error) {
	if !moneyRe.MatchString(total) {
		return "", ErrBadTotal
	}
	return total, nil
}

// ValidateItems validates every entry of a non-empty item sequence and
// returns the typed items in submission order. A single bad entry fails
// the whole sequence.
func ValidateItems(items []RawItem) ([]models.Item, error) {
	if len(items) < 1 {
		return nil, ErrBadItems
	}
	validated := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !descriptionRe.MatchString(item.ShortDescription) {
			return nil, ErrBadItems
		}
		if !moneyRe.MatchString(item.Price) {
			return nil, ErrBadItems
		}
		validated = append(validated, models.Item{
			Price:            item.Price,
			ShortDescription: item.ShortDescription,
		})
	}
	return validated, nil
}

// MakeReceipt runs every field validator and constructs a Receipt only
// if all of them pass. The first failure is returned as-is.
func MakeReceipt(retailer, purchaseDate, purchaseTime, total string, items []RawItem) (*models.Receipt, error) {
	retailer, err := ValidateRetailer(retailer)
	if err != nil {
		return nil, err
	}
	purchaseDate, err = ValidateDate(purchaseDate)
	if err != nil {
		return nil, err
	}
	purchaseTime, err = ValidateTime(purchaseTime)
	if err != nil {
		return nil, err
	}
	total, err = ValidateTotal(total)
	if err != nil {
		return nil, err
	}
	validatedItems, err := ValidateItems(items)
	if err != nil {
		return nil, err
	}

	return &models.Receipt{
		Retailer:     retailer,
		PurchaseDate: purchaseDate,
		PurchaseTime: purchaseTime,
		Total:        total,
		Items:        validatedItems,
	}, nil
}

// daysInMonth returns the number of days in the given month, accounting
// for leap years in February.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default: // February
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
}

// Package scoring computes the reward points for a validated receipt.
// Every function assumes its input already passed validation and does
// no re-checking of its own.
package scoring

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"receipts/internal/models"
)

var (
	quarter   = decimal.New(25, -2) // 0.25
	pointRate = decimal.New(2, -1)  // 0.2
)

// RetailerPoints awards one point per alphanumeric character in the
// retailer name. Spaces and symbols count for nothing.
func RetailerPoints(retailer string) int {
	count := 0
	for _, r := range retailer {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// TotalPoints awards 50 points for a round dollar total and 25 points
// for a multiple of 0.25. Both bonuses stack, so a round dollar amount
// earns 75. Decimal arithmetic keeps values like 0.75 exact.
func TotalPoints(total string) int {
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return 0
	}
	points := 0
	if amount.IsInteger() {
		points += 50
	}
	if amount.Mod(quarter).IsZero() {
		points += 25
	}
	return points
}

// ItemsPoints awards 5 points per pair of items, plus ceil(price * 0.2)
// for every item whose trimmed description length is a multiple of 3.
// An all-whitespace description trims to length zero, which counts.
func ItemsPoints(items []models.Item) int {
	points := 5 * (len(items) / 2)
	for _, item := range items {
		trimmed := strings.TrimSpace(item.ShortDescription)
		if len(trimmed)%3 != 0 {
			continue
		}
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			continue
		}
		points += int(price.Mul(pointRate).Ceil().IntPart())
	}
	return points
}

// DayPoints awards 6 points when the day of the month is odd.
func DayPoints(purchaseDate string) int {
	parts := strings.Split(purchaseDate, "-")
	if len(parts) != 3 {
		return 0
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	if day%2 != 0 {
		return 6
	}
	return 0
}

// TimePoints awards 10 points for purchases strictly after 14:00 and
// strictly before 16:00. Exactly 14:00 and exactly 16:00 earn nothing.
func TimePoints(purchaseTime string) int {
	parts := strings.Split(purchaseTime, ":")
	if len(parts) != 2 {
		return 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	if (hour == 14 && minute > 0) || hour == 15 {
		return 10
	}
	return 0
}

// TotalScore sums the five point rules for a receipt.
func TotalScore(receipt *models.Receipt) int {
	points := 0
	points += RetailerPoints(receipt.Retailer)
	points += TotalPoints(receipt.Total)
	points += ItemsPoints(receipt.Items)
	points += DayPoints(receipt.PurchaseDate)
	points += TimePoints(receipt.PurchaseTime)
	return points
}

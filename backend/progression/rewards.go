package progression

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CouponStatusAvailable = "available"
	CouponStatusUsed      = "used"

	defaultCouponExpiryDays = 30
	codePrefixLen           = 6
)

// CouponInfo is the slice of a catalog coupon the engine needs.
type CouponInfo struct {
	ID             uint
	Title          string
	Partner        string
	PointsRequired int
	ExpiryDays     int
}

// RedeemedCoupon is the instance created by a successful redemption.
type RedeemedCoupon struct {
	CouponID     uint
	CouponTitle  string
	Partner      string
	Code         string
	Status       string
	RedeemedDate string
	ExpiryDate   string
	PointsSpent  int
}

// Redeem exchanges XP for a coupon instance. Fails with ErrInsufficientXP
// and no mutation when the balance is short. On success the cost is
// deducted and the level re-derived, which can drop below a previously
// reached threshold; unlocked badges are kept either way.
func (s Snapshot) Redeem(coupon CouponInfo, today time.Time) (Snapshot, RedeemedCoupon, error) {
	if coupon.PointsRequired <= 0 {
		return s, RedeemedCoupon{}, ErrInvalidAmount
	}
	if s.TotalXP < coupon.PointsRequired {
		return s, RedeemedCoupon{}, ErrInsufficientXP
	}

	s.TotalXP -= coupon.PointsRequired
	s.Level = LevelForXP(s.TotalXP)

	expiryDays := coupon.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = defaultCouponExpiryDays
	}

	rc := RedeemedCoupon{
		CouponID:     coupon.ID,
		CouponTitle:  coupon.Title,
		Partner:      coupon.Partner,
		Code:         GenerateCouponCode(coupon.Partner),
		Status:       CouponStatusAvailable,
		RedeemedDate: today.Format(DateFormat),
		ExpiryDate:   today.AddDate(0, 0, expiryDays).Format(DateFormat),
		PointsSpent:  coupon.PointsRequired,
	}
	return s, rc, nil
}

// MarkCouponUsed transitions available -> used. Marking a used coupon again
// is an idempotent no-op signalled with ErrAlreadyUsed; any other status is
// rejected.
func MarkCouponUsed(status string, today time.Time) (newStatus, usedDate string, err error) {
	switch status {
	case CouponStatusAvailable:
		return CouponStatusUsed, today.Format(DateFormat), nil
	case CouponStatusUsed:
		return status, "", ErrAlreadyUsed
	default:
		return status, "", ErrInvalidTransition
	}
}

// GenerateCouponCode builds a brand-prefixed alphanumeric redemption code,
// e.g. "SWIGGY-3F9A1C2B".
func GenerateCouponCode(partner string) string {
	prefix := strings.Builder{}
	for _, r := range strings.ToUpper(partner) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			prefix.WriteRune(r)
		}
		if prefix.Len() == codePrefixLen {
			break
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString("WALLET")
	}

	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix.String() + "-" + raw[:8]
}

package entities

import (
	"time"
)

// ApprovalStatus is the admin moderation gate controlling public visibility
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// Plan is the subscription tier of a DJ profile
type Plan string

const (
	PlanFree  Plan = "FREE"
	PlanPro   Plan = "PRO"
	PlanElite Plan = "ELITE"
)

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// DJProfile represents a DJ listing in the marketplace
type DJProfile struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	Name           string         `json:"name" db:"name"`
	Slug           string         `json:"slug" db:"slug"`
	City           string         `json:"city" db:"city"`
	State          string         `json:"state,omitempty" db:"state"`
	Genres         []string       `json:"genres" db:"-"`
	EventTypes     []string       `json:"event_types" db:"-"`
	MinFee         float64        `json:"min_fee" db:"min_fee"`
	Bio            string         `json:"bio" db:"bio"`
	Gallery        []string       `json:"gallery,omitempty" db:"-"`
	Videos         []string       `json:"videos,omitempty" db:"-"`
	Verified       bool           `json:"verified" db:"verified"`
	Featured       bool           `json:"featured" db:"featured"`
	AvgRating      float64        `json:"avg_rating" db:"avg_rating"`
	ReviewCount    int            `json:"review_count" db:"review_count"`
	ProfileImage   string         `json:"profile_image" db:"profile_image"`
	CoverImage     string         `json:"cover_image" db:"cover_image"`
	ApprovalStatus ApprovalStatus `json:"approval_status" db:"approval_status"`
	Plan           Plan           `json:"plan" db:"plan"`
	Location       *Location      `json:"location,omitempty" db:"-"`
	LiveStatus     string         `json:"live_status,omitempty" db:"live_status"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// ApplyPlan sets the plan and rederives the verified/featured flags.
// Verified and featured are never independent state: PRO and ELITE imply both.
func (p *DJProfile) ApplyPlan(plan Plan) {
	p.Plan = plan
	p.Verified = plan == PlanPro || plan == PlanElite
	p.Featured = p.Verified
}

// PubliclyVisible reports whether the profile may appear in public
// search, featured listings and profile pages.
func (p *DJProfile) PubliclyVisible() bool {
	return p.ApprovalStatus == ApprovalStatusApproved
}

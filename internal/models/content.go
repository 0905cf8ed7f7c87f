package models

import "time"

// Hero is the landing banner copy.
type Hero struct {
	Title       string `json:"title"       bson:"title"`
	Subtitle    string `json:"subtitle"    bson:"subtitle"`
	EventDate   string `json:"eventDate"   bson:"event_date"`
	Venue       string `json:"venue"       bson:"venue"`
	CTALabel    string `json:"ctaLabel"    bson:"cta_label"`
	Description string `json:"description" bson:"description"`
}

// About describes the organising institution and the expo.
type About struct {
	Heading    string   `json:"heading"    bson:"heading"`
	Body       string   `json:"body"       bson:"body"`
	Highlights []string `json:"highlights" bson:"highlights"`
}

// EventDetails holds schedule, eligibility and prize information.
type EventDetails struct {
	Date             string   `json:"date"             bson:"date"`
	Time             string   `json:"time"             bson:"time"`
	Venue            string   `json:"venue"            bson:"venue"`
	RegistrationFee  string   `json:"registrationFee"  bson:"registration_fee"`
	Deadline         string   `json:"deadline"         bson:"deadline"`
	Eligibility      string   `json:"eligibility"      bson:"eligibility"`
	Categories       []string `json:"categories"       bson:"categories"`
	Prizes           []string `json:"prizes"           bson:"prizes"`
	TeamSizeGuidance string   `json:"teamSizeGuidance" bson:"team_size_guidance"`
}

// Coordinator is one faculty or student contact person.
type Coordinator struct {
	Name  string `json:"name"  bson:"name"`
	Role  string `json:"role"  bson:"role"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

// Coordinators groups faculty and student coordinators.
type Coordinators struct {
	Faculty  []Coordinator `json:"faculty"  bson:"faculty"`
	Students []Coordinator `json:"students" bson:"students"`
}

// Contact is the footer/contact page copy.
type Contact struct {
	Address string `json:"address" bson:"address"`
	Phone   string `json:"phone"   bson:"phone"`
	Email   string `json:"email"   bson:"email"`
	MapURL  string `json:"mapUrl"  bson:"map_url"`
}

// GalleryImage is gallery metadata stored in MongoDB; the bytes live in
// object storage under ObjectKey.
type GalleryImage struct {
	ID          string    `json:"id"          bson:"_id"`
	Title       string    `json:"title"       bson:"title"`
	ObjectKey   string    `json:"-"           bson:"object_key"`
	ContentType string    `json:"contentType" bson:"content_type"`
	Size        int64     `json:"size"        bson:"size"`
	URL         string    `json:"url"         bson:"-"`
	CreatedAt   time.Time `json:"createdAt"   bson:"created_at"`
}

package domain

// ApplicationStatus values used by the backend.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
)

// Application is a request by a user to rent a listing.
type Application struct {
	Author      string `json:"author"`
	ListingID   string `json:"listingId"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Rating is feedback left on a listing by a non-owner.
// Fractional values are allowed; the backend owns range enforcement.
type Rating struct {
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// Listing is a rentable item posted by a user.
//
// Ratings, Applications and StorageRelationLinks are always non-nil after
// mapping from the wire format, even when the backend omits them.
type Listing struct {
	ID                   string        `json:"id"`
	Title                string        `json:"title"`
	Body                 string        `json:"body"`
	StorageRelationLinks []string      `json:"storageRelationLinks"`
	Author               string        `json:"author"`
	Ratings              []Rating      `json:"ratings"`
	Applications         []Application `json:"applications"`
	Price                float64       `json:"price"`
	Interval             string        `json:"interval"`
	Available            bool          `json:"available"`
}

// CoverURL returns the first attachment URL, which is treated as the
// listing's cover image. Empty string when the listing has no attachments.
func (l *Listing) CoverURL() string {
	if len(l.StorageRelationLinks) == 0 {
		return ""
	}
	return l.StorageRelationLinks[0]
}

// IsOwner reports whether userID owns this listing. Ownership is identity
// equality on the author ID only; no token verification happens client-side.
func (l *Listing) IsOwner(userID string) bool {
	return userID != "" && l.Author == userID
}

// HasApplied reports whether userID already has an application on this listing.
func (l *Listing) HasApplied(userID string) bool {
	for i := range l.Applications {
		if l.Applications[i].Author == userID {
			return true
		}
	}
	return false
}

// AverageRating returns the mean of all ratings, or 0 when unrated.
func (l *Listing) AverageRating() float64 {
	if len(l.Ratings) == 0 {
		return 0
	}
	var sum float64
	for i := range l.Ratings {
		sum += l.Ratings[i].Rating
	}
	return sum / float64(len(l.Ratings))
}

// PendingApplications returns the applications still awaiting a decision.
func (l *Listing) PendingApplications() []Application {
	var pending []Application
	for i := range l.Applications {
		if l.Applications[i].Status == ApplicationPending {
			pending = append(pending, l.Applications[i])
		}
	}
	return pending
}

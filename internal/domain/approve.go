package domain

// ApproveApplication returns a copy of the listing with the applicant's
// application marked approved and the listing flagged unavailable.
//
// This is the optimistic local reduction applied after a successful approve
// call, so the view can update without a re-fetch. The copy can diverge from
// server truth until the next refresh; callers accept that divergence.
func ApproveApplication(l Listing, applicantID string) Listing {
	apps := make([]Application, len(l.Applications))
	copy(apps, l.Applications)
	for i := range apps {
		if apps[i].Author == applicantID {
			apps[i].Status = ApplicationApproved
		}
	}
	l.Applications = apps
	l.Available = false
	return l
}

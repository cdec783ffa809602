package models

const (
	DefaultDonationQuantity = 1
	DefaultDonationValue    = 0.0
)

type Donation struct {
	ID          int64
	Description string
	Quantity    int
	Value       float64
	CategoryID  int64
	StatusID    int64
	UserID      int64
}

// DonationView is a donation joined with the names of its category, status
// and donor, as shown in lists and the JSON API.
type DonationView struct {
	Donation
	CategoryName string
	StatusName   string
	DonorName    string
}

// DonationPatch lists the fields a donation owner may change. Status is not
// part of it: a donation keeps the status it was created with.
type DonationPatch struct {
	Description Optional[string]
	Quantity    Optional[int]
	Value       Optional[float64]
	CategoryID  Optional[int64]
}

// IsEmpty reports whether the patch changes nothing.
func (p DonationPatch) IsEmpty() bool {
	return !p.Description.Set && !p.Quantity.Set && !p.Value.Set && !p.CategoryID.Set
}

package models

// DonationPurpose is the seva a donation was offered towards.
type DonationPurpose string

// All recognised donation purposes.
const (
	PurposeGeneral  DonationPurpose = "General"
	PurposeBuilding DonationPurpose = "Building"
	PurposeFeast    DonationPurpose = "Feast"
	PurposeGoshala  DonationPurpose = "Goshala"
)

// DonationPurposes lists every valid purpose, in form display order.
func DonationPurposes() []DonationPurpose {
	return []DonationPurpose{PurposeGeneral, PurposeBuilding, PurposeFeast, PurposeGoshala}
}

// Valid reports whether p is one of the recognised purposes.
func (p DonationPurpose) Valid() bool {
	switch p {
	case PurposeGeneral, PurposeBuilding, PurposeFeast, PurposeGoshala:
		return true
	}

	return false
}

// DonationMethod is the payment channel of a donation.
type DonationMethod string

// All recognised donation methods.
const (
	MethodCash   DonationMethod = "Cash"
	MethodOnline DonationMethod = "Online"
	MethodCheque DonationMethod = "Cheque"
)

// DonationMethods lists every valid method, in form display order.
func DonationMethods() []DonationMethod {
	return []DonationMethod{MethodCash, MethodOnline, MethodCheque}
}

// Valid reports whether m is one of the recognised methods.
func (m DonationMethod) Valid() bool {
	switch m {
	case MethodCash, MethodOnline, MethodCheque:
		return true
	}

	return false
}

// Donation represents a single Laxmi Seva contribution. Donor names are
// free text and are not linked to devotee records.
type Donation struct {
	ID        string          `json:"id"`
	DonorName string          `json:"donorName"`
	Amount    float64         `json:"amount"`
	Date      string          `json:"date"`
	Purpose   DonationPurpose `json:"purpose"`
	Method    DonationMethod  `json:"method"`
}

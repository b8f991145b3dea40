package devotee

// Form carries the "new devotee" submission. Name, email and phone are the
// only mandatory fields; everything else is optional or defaulted.
type Form struct {
	Name          string `form:"name" validate:"required"`
	SpiritualName string `form:"spiritual_name"`
	Email         string `form:"email" validate:"required,email"`
	Phone         string `form:"phone" validate:"required"`
	DOB           string `form:"dob"`
	Photo         string `form:"photo"`
	Status        string `form:"status"`
	Hobbies       string `form:"hobbies"`
	DailyMalas    string `form:"daily_malas"`
}

package packets

// body for registering
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateYearRequest struct {
	Year int `json:"year" binding:"required,min=1"`
}

// Months and weeks are created from a title plus an inclusive date interval;
// the parent record is resolved from the dates, never sent by the client.
type CreateMonthRequest struct {
	Title    string `json:"title" binding:"required"`
	StartsOn string `json:"starts_on" binding:"required,datetime=2006-01-02"`
	EndsOn   string `json:"ends_on" binding:"required,datetime=2006-01-02"`
}

type CreateWeekRequest struct {
	Title    string `json:"title" binding:"required"`
	StartsOn string `json:"starts_on" binding:"required,datetime=2006-01-02"`
	EndsOn   string `json:"ends_on" binding:"required,datetime=2006-01-02"`
}

// Repetition fields must come as a pair; binding only bounds each one,
// the pairing itself is checked later.
type CreateScheduleRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	RepetitionRate  *int   `json:"repetition_rate" binding:"omitempty,min=1"`
	RepetitionCount *int   `json:"repetition_count" binding:"omitempty,min=1"`
}

type UpdateScheduleRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	RepetitionRate  *int   `json:"repetition_rate" binding:"omitempty,min=1"`
	RepetitionCount *int   `json:"repetition_count" binding:"omitempty,min=1"`
}

package packets

// returned for profile endpoints
type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Response mirrors model.Schedule but flattens times.
type ScheduleResponse struct {
	ID              int    `json:"id"`
	Date            string `json:"date"`
	WeekID          int    `json:"week_id"`
	RepetitionRate  *int   `json:"repetition_rate"`
	RepetitionCount *int   `json:"repetition_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type WeekResponse struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	StartsOn string `json:"starts_on"`
	EndsOn   string `json:"ends_on"`
}

type MonthResponse struct {
	ID       int            `json:"id"`
	Title    string         `json:"title"`
	StartsOn string         `json:"starts_on"`
	EndsOn   string         `json:"ends_on"`
	Weeks    []WeekResponse `json:"weeks"`
}

type YearResponse struct {
	ID     int             `json:"id"`
	Year   int             `json:"year"`
	Months []MonthResponse `json:"months"`
}

type CalendarResponse struct {
	Years []YearResponse `json:"years"`
}

// one slot of a week page; Schedule is null on free days
type DayResponse struct {
	Date     string            `json:"date"`
	Schedule *ScheduleResponse `json:"schedule"`
}

type DayListResponse struct {
	Year  int           `json:"year"`
	Month string        `json:"month"`
	Week  string        `json:"week"`
	Days  []DayResponse `json:"days"`
}

// one slot of the profile digest; Label is "today" or "tomorrow"
type DigestDayResponse struct {
	Label    string            `json:"label"`
	Date     string            `json:"date"`
	Schedule *ScheduleResponse `json:"schedule"`
}

type ProfileDigestResponse struct {
	User ProfileResponse     `json:"user"`
	Days []DigestDayResponse `json:"days"`
}

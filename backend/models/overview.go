package models

type CourseCompletion struct {
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	Progress  int    `json:"progress"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type DashboardOverview struct {
	OverallProgress int                `json:"overall_progress"`
	Courses         []CourseCompletion `json:"courses"`
	RecentJournals  []JournalEntry     `json:"recent_journals"`
	LoginDays       []int              `json:"login_days"`
}

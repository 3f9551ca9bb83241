package handler

type personRequest struct {
	FullName  string `json:"full_name"  form:"full_name"  validate:"required,min=2,max=120"`
	Biography string `json:"biography"  form:"biography"  validate:"omitempty,max=5000"`
	BirthDate string `json:"birth_date" form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	DeathDate string `json:"death_date" form:"death_date" validate:"omitempty,datetime=2006-01-02"`
}

type personRoleRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type creditEntry struct {
	PersonID string `json:"person_id" validate:"required"`
	RoleID   string `json:"role_id"   validate:"required"`
}

type creditsRequest struct {
	Credits []creditEntry `json:"credits" validate:"dive"`
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// PersonHandler serves the persons catalogue, credit roles and content
// credits.
type PersonHandler struct {
	persons ports.PersonService
}

func NewPersonHandler(persons ports.PersonService) *PersonHandler {
	return &PersonHandler{persons: persons}
}

// List handles GET /persons.
//
// @Summary      List persons
// @Tags         persons
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Person
// @Router       /persons [get]
func (h *PersonHandler) List(c echo.Context) error {
	persons, err := h.persons.ListPersons(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, persons)
}

// Get handles GET /persons/:id.
//
// @Summary      Get a person
// @Tags         persons
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Person id"
// @Success      200  {object}  domain.Person
// @Failure      404  {object}  errorResponse
// @Router       /persons/{id} [get]
func (h *PersonHandler) Get(c echo.Context) error {
	person, err := h.persons.GetPerson(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Search handles GET /persons/search.
//
// @Summary      Search persons by name
// @Tags         persons
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Search query"
// @Success      200  {array}  domain.Person
// @Failure      400  {object}  errorResponse
// @Router       /persons/search [get]
func (h *PersonHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing search query")
	}

	persons, err := h.persons.SearchPersons(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, persons)
}

// Create handles POST /persons (admin only). Multipart with an optional
// photo file.
//
// @Summary      Create a person
// @Tags         persons
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        full_name  formData  string  true   "Full name"
// @Param        photo      formData  file    false  "Photo"
// @Success      201  {object}  domain.Person
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /persons [post]
func (h *PersonHandler) Create(c echo.Context) error {
	input, err := bindPersonInput(c)
	if err != nil {
		return err
	}

	person, err := h.persons.CreatePerson(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, person)
}

// Update handles PUT /persons/:id (admin only).
//
// @Summary      Update a person
// @Tags         persons
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Person id"
// @Success      200  {object}  domain.Person
// @Failure      404  {object}  errorResponse
// @Router       /persons/{id} [put]
func (h *PersonHandler) Update(c echo.Context) error {
	input, err := bindPersonInput(c)
	if err != nil {
		return err
	}

	person, err := h.persons.UpdatePerson(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// Delete handles DELETE /persons/:id (admin only). A person still credited
// in content cannot be removed.
//
// @Summary      Delete a person
// @Tags         persons
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Person id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /persons/{id} [delete]
func (h *PersonHandler) Delete(c echo.Context) error {
	if err := h.persons.DeletePerson(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListContentCredits handles GET /content/:id/credits.
//
// @Summary      List the credits of a content entry
// @Tags         persons
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "Content id"
// @Success      200  {array}  ports.ContentCredit
// @Failure      404  {object}  errorResponse
// @Router       /content/{id}/credits [get]
func (h *PersonHandler) ListContentCredits(c echo.Context) error {
	credits, err := h.persons.ListContentCredits(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credits)
}

// SetContentCredits handles PUT /content/:id/credits (admin only). The body
// replaces the whole credit set.
//
// @Summary      Replace the credits of a content entry
// @Tags         persons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Content id"
// @Param        body  body  creditsRequest  true  "Credit set"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /content/{id}/credits [put]
func (h *PersonHandler) SetContentCredits(c echo.Context) error {
	var req creditsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	credits := make([]ports.CreditInput, 0, len(req.Credits))
	for _, entry := range req.Credits {
		credits = append(credits, ports.CreditInput{PersonID: entry.PersonID, RoleID: entry.RoleID})
	}

	if err := h.persons.SetContentCredits(c.Request().Context(), c.Param("id"), credits); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRoles handles GET /persons-roles.
//
// @Summary      List credit roles
// @Tags         personRoles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.PersonRole
// @Router       /persons-roles [get]
func (h *PersonHandler) ListRoles(c echo.Context) error {
	roles, err := h.persons.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// GetRole handles GET /persons-roles/:id.
//
// @Summary      Get a credit role
// @Tags         personRoles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Role id"
// @Success      200  {object}  domain.PersonRole
// @Failure      404  {object}  errorResponse
// @Router       /persons-roles/{id} [get]
func (h *PersonHandler) GetRole(c echo.Context) error {
	role, err := h.persons.GetRole(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// CreateRole handles POST /persons-roles (admin only).
//
// @Summary      Create a credit role
// @Tags         personRoles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      personRoleRequest  true  "Role"
// @Success      201   {object}  domain.PersonRole
// @Failure      409   {object}  errorResponse
// @Router       /persons-roles [post]
func (h *PersonHandler) CreateRole(c echo.Context) error {
	var req personRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.persons.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole handles PUT /persons-roles/:id (admin only).
//
// @Summary      Update a credit role
// @Tags         personRoles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Role id"
// @Param        body  body      personRoleRequest  true  "Role"
// @Success      200   {object}  domain.PersonRole
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /persons-roles/{id} [put]
func (h *PersonHandler) UpdateRole(c echo.Context) error {
	var req personRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.persons.UpdateRole(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles DELETE /persons-roles/:id (admin only).
//
// @Summary      Delete a credit role
// @Tags         personRoles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /persons-roles/{id} [delete]
func (h *PersonHandler) DeleteRole(c echo.Context) error {
	if err := h.persons.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindPersonInput(c echo.Context) (ports.PersonInput, error) {
	var req personRequest
	if err := c.Bind(&req); err != nil {
		return ports.PersonInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.PersonInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	birth, err := parseDate(req.BirthDate)
	if err != nil {
		return ports.PersonInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid birth date")
	}
	death, err := parseDate(req.DeathDate)
	if err != nil {
		return ports.PersonInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid death date")
	}

	photo, err := formFileUpload(c, "photo")
	if err != nil {
		return ports.PersonInput{}, err
	}

	return ports.PersonInput{
		FullName:  req.FullName,
		Biography: req.Biography,
		BirthDate: birth,
		DeathDate: death,
		Photo:     photo,
	}, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

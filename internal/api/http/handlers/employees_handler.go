package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docrequest-service/internal/api/dto"
	"github.com/spec-kit/docrequest-service/internal/service"
)

// EmployeesHandler serves the addressee roster.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// ListEmployees GET /employees. No session required.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		items = append(items, dto.EmployeeResponse{ID: emp.ID, Name: emp.Name, Email: emp.Email})
	}
	return c.JSON(fiber.Map{"data": items})
}

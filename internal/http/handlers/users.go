package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "shuttle/internal/config"
	"shuttle/internal/domain/models"
)

const userColumns = `id, COALESCE(company_id,0), name, email, COALESCE(phone,''), role, status`

// GET /api/users?q=
func GetUsers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if q != "" {
		query += ` WHERE (name LIKE ? OR email LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY id DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan user", err)
			return
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "row iteration error", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var u models.User
	err := intconfig.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.CompanyID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type userPayload struct {
	CompanyID int64  `json:"companyId"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var payload userPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	role := strings.TrimSpace(payload.Role)
	if role == "" {
		role = "commuter"
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = "active"
	}

	res, err := intconfig.DB.Exec(`
		UPDATE users SET company_id = ?, name = ?, email = ?, phone = ?, role = ?, status = ?, updated_at = NOW()
		WHERE id = ?
	`, payload.CompanyID, payload.Name, payload.Email, payload.Phone, role, status, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete user", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// GET /api/companies
func GetCompanies(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT id, name, COALESCE(contact,''), active FROM companies ORDER BY name ASC`)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list companies", err)
		return
	}
	defer rows.Close()

	list := []models.Company{}
	for rows.Next() {
		var co models.Company
		if err := rows.Scan(&co.ID, &co.Name, &co.Contact, &co.Active); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan company", err)
			return
		}
		list = append(list, co)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "row iteration error", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

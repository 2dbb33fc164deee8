package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/dbtest"
)

func TestCanWriteAndCaller(t *testing.T) {
	user := uuid.New()
	tests := []struct {
		name      string
		userType  string
		userID    string
		perms     []string
		wantWrite bool
		wantID    uuid.UUID
		wantErr   bool
	}{
		{"owner without id", helperAuth.UserTypeOwner, "", nil, true, uuid.Nil, false},
		{"staff writer", helperAuth.UserTypeStaff, user.String(), []string{"assignments:*"}, true, user, false},
		{"staff reader", helperAuth.UserTypeStaff, user.String(), []string{"assignments:read"}, false, user, false},
		{"staff missing id", helperAuth.UserTypeStaff, "", nil, false, uuid.Nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				c.Locals(helperAuth.LocUserType, tt.userType)
				if tt.userID != "" {
					c.Locals(helperAuth.LocUserID, tt.userID)
				}
				c.Locals(helperAuth.LocPermissions, tt.perms)

				assert.Equal(t, tt.wantWrite, canWrite(c))
				id, err := caller(c)
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
					assert.Equal(t, tt.wantID, id)
				}
				return c.SendStatus(204)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, 204, resp.StatusCode)
		})
	}
}

func TestKindsRenderTheirOwnModel(t *testing.T) {
	s := staffKind.newRow()
	assert.Equal(t, "staff_assignments", s.TableName())
	assert.Equal(t, "staff_assignment_", s.Prefix())
	assert.NotNil(t, staffKind.render(s))

	st := studentKind.newRow()
	assert.Equal(t, "student_assignments", st.TableName())
	assert.Equal(t, "student", st.AssigneeType())
	assert.NotNil(t, studentKind.render(st))
}

func TestVisibleSQL(t *testing.T) {
	db, _ := dbtest.DryRun(t)
	user := uuid.New()

	var rows []map[string]any
	stmt := visible(db.Table("t_demo.staff_assignments"), "staff_assignment_", user, false).Find(&rows).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "t_demo"."staff_assignments"`)
	assert.Contains(t, sql, "staff_assignment_is_deleted_for_everyone = FALSE AND "+
		"(NOT (staff_assignment_is_deleted_for_me = TRUE AND staff_assignment_created_by = $1))")
	assert.Equal(t, []any{user}, stmt.Vars)

	stmt = visible(db.Table("t_demo.student_assignments"), "student_assignment_", user, true).Find(&rows).Statement
	sql = stmt.SQL.String()
	assert.Contains(t, sql, "student_assignment_is_deleted_for_everyone = FALSE")
	assert.NotContains(t, sql, "is_deleted_for_me")
	assert.Empty(t, stmt.Vars)
}

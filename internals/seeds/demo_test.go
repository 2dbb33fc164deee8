package seeds

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDemoFromJSON(t *testing.T) {
	s, err := LoadDemoFromJSON("data_demo_tenant.json")
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Customer.CustomerSlug)
	assert.Len(t, s.Branches, 2)
	assert.Len(t, s.Classes, 3)
	require.NotNil(t, s.Period)
	require.Len(t, s.Staffs, 1)

	m, err := s.Customer.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "t_demo", m.CustomerSchema)
}

func TestLoadDemoFromJSONErrors(t *testing.T) {
	_, err := LoadDemoFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"customer":`), 0o600))
	_, err = LoadDemoFromJSON(bad)
	assert.Error(t, err)

	dup := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{
		"customer": {"customer_name": "X"},
		"branches": [
			{"branch_name": "A", "branch_code": "A"},
			{"branch_name": "B", "branch_code": "A"}
		]
	}`), 0o600))
	_, err = LoadDemoFromJSON(dup)
	assert.ErrorIs(t, err, ErrSeedInvalid)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, DemoSeed{}.Validate(), ErrSeedInvalid)

	s := DemoSeed{}
	s.Customer.CustomerName = "Sekolah"
	assert.NoError(t, s.Validate())

	s.Branches = []BranchSeed{{BranchName: "", BranchCode: "X"}}
	assert.ErrorIs(t, s.Validate(), ErrSeedInvalid)

	s.Branches = []BranchSeed{{BranchName: "X", BranchCode: "X"}}
	s.Staffs = []StaffSeed{{FullName: "Tanpa Email"}}
	assert.ErrorIs(t, s.Validate(), ErrSeedInvalid)
}

func demoSeed() DemoSeed {
	grade := 7
	return DemoSeed{
		Branches: []BranchSeed{
			{BranchName: " Kampus Utama ", BranchCode: "UTAMA"},
			{BranchName: "Kampus Timur", BranchCode: "TIMUR"},
		},
		Classes: []ClassSeed{
			{BranchCode: "UTAMA", ClassName: "7A", ClassGradeLevel: &grade},
		},
		Staffs: []StaffSeed{
			{FullName: "Semua Cabang", Email: " Admin@Demo.sch.id "},
			{FullName: "Timur Saja", Email: "timur@demo.sch.id", BranchCodes: []string{"TIMUR"}},
		},
	}
}

func TestBuildBranchesAndClasses(t *testing.T) {
	s := demoSeed()
	branches := BuildBranches(s)
	require.Len(t, branches, 2)
	assert.Equal(t, "Kampus Utama", branches[0].BranchName)
	assert.True(t, branches[0].BranchIsActive)

	utama := uuid.New()
	classes, err := BuildClasses(s, map[string]uuid.UUID{"UTAMA": utama})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, utama, classes[0].ClassBranchID)
	assert.Equal(t, 7, *classes[0].ClassGradeLevel)

	_, err = BuildClasses(s, map[string]uuid.UUID{})
	assert.ErrorIs(t, err, ErrSeedInvalid)
}

func TestBuildPeriod(t *testing.T) {
	p, err := BuildPeriod(PeriodSeed{Name: "TA", StartDate: "2026-07-13", EndDate: "2027-06-30"})
	require.NoError(t, err)
	assert.True(t, p.AcademicPeriodIsActive)
	assert.Equal(t, 13, p.AcademicPeriodStartDate.Day())

	_, err = BuildPeriod(PeriodSeed{StartDate: "13-07-2026", EndDate: "2027-06-30"})
	assert.ErrorIs(t, err, ErrSeedInvalid)

	_, err = BuildPeriod(PeriodSeed{StartDate: "2027-06-30", EndDate: "2026-07-13"})
	assert.ErrorIs(t, err, ErrSeedInvalid)
}

func TestBuildStaffs(t *testing.T) {
	s := demoSeed()
	role := uuid.New()
	utama, timur := uuid.New(), uuid.New()
	ids := map[string]uuid.UUID{"UTAMA": utama, "TIMUR": timur}

	staffs, err := BuildStaffs(s, role, ids)
	require.NoError(t, err)
	require.Len(t, staffs, 2)

	assert.Equal(t, "admin@demo.sch.id", *staffs[0].StaffEmail)
	assert.Equal(t, role, staffs[0].StaffRoleID)
	assert.ElementsMatch(t, []string{utama.String(), timur.String()}, []string(staffs[0].StaffBranchIDs))
	assert.Equal(t, []string{timur.String()}, []string(staffs[1].StaffBranchIDs))
	assert.Empty(t, staffs[1].StaffClassIDs)

	_, err = BuildStaffs(s, role, map[string]uuid.UUID{"UTAMA": utama})
	assert.ErrorIs(t, err, ErrSeedInvalid)
}

package seeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	academicModel "schoolhub_backend/internals/features/academics/model"
	roleModel "schoolhub_backend/internals/features/access/roles/model"
	customerDTO "schoolhub_backend/internals/features/customers/dto"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	"schoolhub_backend/internals/helpers/tenant"
)

type BranchSeed struct {
	BranchName    string  `json:"branch_name"`
	BranchCode    string  `json:"branch_code"`
	BranchAddress *string `json:"branch_address"`
}

type ClassSeed struct {
	BranchCode      string `json:"branch_code"`
	ClassName       string `json:"class_name"`
	ClassGradeLevel *int   `json:"class_grade_level"`
}

type PeriodSeed struct {
	Name      string `json:"academic_period_name"`
	StartDate string `json:"academic_period_start_date"`
	EndDate   string `json:"academic_period_end_date"`
}

type StaffSeed struct {
	FullName    string   `json:"staff_full_name"`
	Email       string   `json:"staff_email"`
	BranchCodes []string `json:"branch_codes"`
}

type DemoSeed struct {
	Customer customerDTO.CreateCustomerRequest `json:"customer"`
	Branches []BranchSeed                      `json:"branches"`
	Classes  []ClassSeed                       `json:"classes"`
	Period   *PeriodSeed                       `json:"period"`
	Staffs   []StaffSeed                       `json:"staffs"`
}

type SeedResult struct {
	Branches int
	Classes  int
	Periods  int
	Staffs   int
}

var ErrSeedInvalid = errors.New("invalid seed data")

func (s DemoSeed) Validate() error {
	if strings.TrimSpace(s.Customer.CustomerName) == "" && strings.TrimSpace(s.Customer.CustomerSlug) == "" {
		return fmt.Errorf("%w: customer name or slug is required", ErrSeedInvalid)
	}
	codes := map[string]bool{}
	for _, b := range s.Branches {
		code := strings.TrimSpace(b.BranchCode)
		if code == "" || strings.TrimSpace(b.BranchName) == "" {
			return fmt.Errorf("%w: branch needs name and code", ErrSeedInvalid)
		}
		if codes[code] {
			return fmt.Errorf("%w: duplicate branch code %q", ErrSeedInvalid, code)
		}
		codes[code] = true
	}
	for _, st := range s.Staffs {
		if strings.TrimSpace(st.Email) == "" {
			return fmt.Errorf("%w: staff %q needs an email", ErrSeedInvalid, st.FullName)
		}
	}
	return nil
}

func BuildBranches(s DemoSeed) []academicModel.BranchModel {
	out := make([]academicModel.BranchModel, 0, len(s.Branches))
	for _, b := range s.Branches {
		out = append(out, academicModel.BranchModel{
			BranchName:     strings.TrimSpace(b.BranchName),
			BranchCode:     strings.TrimSpace(b.BranchCode),
			BranchAddress:  b.BranchAddress,
			BranchIsActive: true,
		})
	}
	return out
}

// BuildClasses: branchIDs dikunci dengan branch_code.
func BuildClasses(s DemoSeed, branchIDs map[string]uuid.UUID) ([]academicModel.ClassModel, error) {
	out := make([]academicModel.ClassModel, 0, len(s.Classes))
	for _, c := range s.Classes {
		id, ok := branchIDs[strings.TrimSpace(c.BranchCode)]
		if !ok {
			return nil, fmt.Errorf("%w: class %q refers to unknown branch %q", ErrSeedInvalid, c.ClassName, c.BranchCode)
		}
		out = append(out, academicModel.ClassModel{
			ClassBranchID:   id,
			ClassName:       strings.TrimSpace(c.ClassName),
			ClassGradeLevel: c.ClassGradeLevel,
			ClassIsActive:   true,
		})
	}
	return out, nil
}

// BuildPeriod: tanggal format YYYY-MM-DD; periode hasil seed langsung aktif.
func BuildPeriod(p PeriodSeed) (academicModel.AcademicPeriodModel, error) {
	start, err := time.Parse("2006-01-02", strings.TrimSpace(p.StartDate))
	if err != nil {
		return academicModel.AcademicPeriodModel{}, fmt.Errorf("%w: period start date: %v", ErrSeedInvalid, err)
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(p.EndDate))
	if err != nil {
		return academicModel.AcademicPeriodModel{}, fmt.Errorf("%w: period end date: %v", ErrSeedInvalid, err)
	}
	m := academicModel.AcademicPeriodModel{
		AcademicPeriodName:      strings.TrimSpace(p.Name),
		AcademicPeriodStartDate: start,
		AcademicPeriodEndDate:   end,
		AcademicPeriodIsActive:  true,
	}
	if err := m.Validate(); err != nil {
		return academicModel.AcademicPeriodModel{}, fmt.Errorf("%w: %v", ErrSeedInvalid, err)
	}
	return m, nil
}

// BuildStaffs: branch_codes kosong berarti semua cabang.
func BuildStaffs(s DemoSeed, roleID uuid.UUID, branchIDs map[string]uuid.UUID) ([]staffModel.StaffModel, error) {
	out := make([]staffModel.StaffModel, 0, len(s.Staffs))
	for _, st := range s.Staffs {
		codes := st.BranchCodes
		if len(codes) == 0 {
			for _, b := range s.Branches {
				codes = append(codes, b.BranchCode)
			}
		}
		ids := make(pq.StringArray, 0, len(codes))
		for _, code := range codes {
			id, ok := branchIDs[strings.TrimSpace(code)]
			if !ok {
				return nil, fmt.Errorf("%w: staff %q refers to unknown branch %q", ErrSeedInvalid, st.FullName, code)
			}
			ids = append(ids, id.String())
		}
		email := strings.ToLower(strings.TrimSpace(st.Email))
		m := staffModel.StaffModel{
			StaffFullName:  strings.TrimSpace(st.FullName),
			StaffEmail:     &email,
			StaffRoleID:    roleID,
			StaffBranchIDs: ids,
			StaffClassIDs:  pq.StringArray{},
			StaffIsActive:  true,
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: staff %q: %v", ErrSeedInvalid, st.FullName, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func scoped(ctx context.Context, tx *gorm.DB, m schema.Tabler) *gorm.DB {
	q, err := tenant.Scoped(ctx, tx, m)
	if err != nil {
		// ctx selalu membawa tenant dari RunAllSeeds
		panic(err)
	}
	return q
}

func seedTenantData(ctx context.Context, db *gorm.DB, s DemoSeed) (SeedResult, error) {
	var res SeedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		branchIDs := map[string]uuid.UUID{}
		for _, b := range BuildBranches(s) {
			var existing academicModel.BranchModel
			err := scoped(ctx, tx, &existing).Where("branch_code = ?", b.BranchCode).First(&existing).Error
			if err == nil {
				branchIDs[b.BranchCode] = existing.BranchID
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			b.BranchID = uuid.New()
			if err := scoped(ctx, tx, &b).Create(&b).Error; err != nil {
				return fmt.Errorf("insert branch %s: %w", b.BranchCode, err)
			}
			branchIDs[b.BranchCode] = b.BranchID
			res.Branches++
		}

		classes, err := BuildClasses(s, branchIDs)
		if err != nil {
			return err
		}
		for _, c := range classes {
			var n int64
			if err := scoped(ctx, tx, &c).
				Where("class_branch_id = ? AND class_name = ?", c.ClassBranchID, c.ClassName).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			c.ClassID = uuid.New()
			if err := scoped(ctx, tx, &c).Create(&c).Error; err != nil {
				return fmt.Errorf("insert class %s: %w", c.ClassName, err)
			}
			res.Classes++
		}

		if s.Period != nil {
			p, err := BuildPeriod(*s.Period)
			if err != nil {
				return err
			}
			var active int64
			if err := scoped(ctx, tx, &p).Where("academic_period_is_active = ?", true).Count(&active).Error; err != nil {
				return err
			}
			if active == 0 {
				p.AcademicPeriodID = uuid.New()
				if err := scoped(ctx, tx, &p).Create(&p).Error; err != nil {
					return fmt.Errorf("insert period: %w", err)
				}
				res.Periods++
			}
		}

		if len(s.Staffs) == 0 {
			return nil
		}
		var admin roleModel.RoleModel
		if err := scoped(ctx, tx, &admin).Where("role_slug = ?", roleModel.AdminRoleSlug).First(&admin).Error; err != nil {
			return fmt.Errorf("admin role: %w", err)
		}
		staffs, err := BuildStaffs(s, admin.RoleID, branchIDs)
		if err != nil {
			return err
		}
		for _, st := range staffs {
			var n int64
			if err := scoped(ctx, tx, &st).Where("staff_email = ?", *st.StaffEmail).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			st.StaffID = uuid.New()
			if err := scoped(ctx, tx, &st).Create(&st).Error; err != nil {
				return fmt.Errorf("insert staff %s: %w", *st.StaffEmail, err)
			}
			res.Staffs++
		}
		return nil
	})
	return res, err
}

package dto

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/customers/model"
	helper "schoolhub_backend/internals/helpers"
)

func TestCreateCustomerDefaults(t *testing.T) {
	req := CreateCustomerRequest{CustomerName: "  SD Harapan Bangsa "}
	req.Normalize()
	require.NoError(t, helper.Validate(&req))

	m, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "sd-harapan-bangsa", m.CustomerSlug)
	assert.Equal(t, "t_sd_harapan_bangsa", m.CustomerSchema)
	assert.Equal(t, "Asia/Jakarta", m.CustomerTimezone)
	assert.True(t, m.CustomerIsActive)
}

func TestCreateCustomerRejects(t *testing.T) {
	req := CreateCustomerRequest{CustomerName: "Sekolah", CustomerSlug: "Bad Slug!"}
	req.Normalize()
	assert.Error(t, helper.Validate(&req))

	req = CreateCustomerRequest{CustomerName: "Sekolah", CustomerTimezone: "Mars/Olympus"}
	req.Normalize()
	_, err := req.ToModel()
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "customer_timezone")

	req = CreateCustomerRequest{CustomerName: "!!"}
	req.Normalize()
	_, err = req.ToModel()
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateCustomerApply(t *testing.T) {
	m := model.CustomerModel{CustomerName: "Lama", CustomerTimezone: "Asia/Jakarta", CustomerIsActive: true}
	name, off, tz := " Baru ", false, "Asia/Makassar"
	cols, err := (&UpdateCustomerRequest{CustomerName: &name, CustomerIsActive: &off, CustomerTimezone: &tz}).Apply(&m)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"customer_name":      "Baru",
		"customer_timezone":  "Asia/Makassar",
		"customer_is_active": false,
	}, cols)
	assert.False(t, m.CustomerIsActive)

	bad := "nowhere"
	_, err = (&UpdateCustomerRequest{CustomerTimezone: &bad}).Apply(&m)
	assert.Error(t, err)
}

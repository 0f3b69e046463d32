package sessionapimodels

import (
	"testing"

	"expense-claims-front/models"

	"github.com/stretchr/testify/require"
)

func TestLoginRequest(t *testing.T) {
	t.Run(`empty code check`, func(t *testing.T) {
		for _, code := range []string{"", "   ", "\t"} {
			req := LoginRequest{EmpCode: code}
			err := req.Validate()
			require.True(t, models.IsValidationError(err))
			require.Equal(t, "укажите табельный номер", err.Error())
		}
	})

	t.Run(`trim check`, func(t *testing.T) {
		req := LoginRequest{EmpCode: " 10001 "}
		require.Nil(t, req.Validate())
		require.Equal(t, "10001", req.GetEmpCode())
	})
}

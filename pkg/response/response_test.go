package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glin-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNextID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NextID()
		assert.True(t, strings.HasPrefix(id, "msg_"))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "msg_1_1", map[string]string{"address": "5Grw"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, TypeResponse, resp.Type)
	assert.Equal(t, "msg_1_1", resp.RequestID)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.NotZero(t, resp.Timestamp)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "5Grw", data["address"])
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, "msg_1_2", apperror.ErrWalletLocked())

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	var resp Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, TypeError, resp.Type)
	assert.False(t, resp.Success)
	assert.Equal(t, "Wallet is locked. Please unlock wallet first.", resp.Error)
	assert.Equal(t, "PRE_002", resp.Code)
}

func TestError_HidesWrappedCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, "msg_1_3", apperror.InternalError(fmt.Errorf("pq: relation wallets does not exist")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestFailure_UnknownError(t *testing.T) {
	msg := Failure("msg_1_4", fmt.Errorf("seed bytes 0xdeadbeef"))

	assert.Equal(t, "Internal error", msg.Error)
	assert.Equal(t, "SYS_000", msg.Code)
	assert.NotContains(t, msg.Error, "deadbeef")
}

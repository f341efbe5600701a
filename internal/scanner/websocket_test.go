package scanner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/share"
)

type acceptRecorder struct {
	mu      sync.Mutex
	weapons []*domain.Weapon
}

func (a *acceptRecorder) accept(_ context.Context, w *domain.Weapon) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.weapons = append(a.weapons, w)
	return nil
}

func (a *acceptRecorder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.weapons)
}

func newScanServer(t *testing.T, rec *acceptRecorder) *httptest.Server {
	t.Helper()

	cat, err := catalog.New(
		[]domain.WeaponClass{{Name: "Pistol", Types: []string{"Laser Pistol"}, BaseRange: 20, StatModifiers: domain.StatModifiers{Damage: 1, Accuracy: 1}}},
		[]domain.Rarity{
			{Name: "Common", StatBonus: 1.0},
			{Name: "Uncommon", StatBonus: 1.1},
			{Name: "Rare", StatBonus: 1.25},
			{Name: "Epic", StatBonus: 1.5},
			{Name: "Legendary", StatBonus: 2.0},
		},
	)
	require.NoError(t, err)
	codec, err := share.NewCodec(cat)
	require.NoError(t, err)

	m := NewManager(codec, 0)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = ServeWebSocket(r.Context(), m, "vex", conn, rec.accept)
	}))
	t.Cleanup(func() {
		m.StopAll()
		srv.Close()
	})
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readStatus(t *testing.T, conn *websocket.Conn) Status {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var st Status
	require.NoError(t, conn.ReadJSON(&st))
	return st
}

func TestServeWebSocket_RetryThenReceive(t *testing.T) {
	rec := &acceptRecorder{}
	conn := dial(t, newScanServer(t, rec))

	assert.Equal(t, StatusScanning, readStatus(t, conn).Status)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("not an image")))
	st := readStatus(t, conn)
	assert.Equal(t, StatusRetry, st.Status)
	assert.Equal(t, UserMessageRetry, st.Message)

	png, err := share.RenderQR("[3,1,2,21,88,19,2,0]", 256)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, png))

	st = readStatus(t, conn)
	assert.Equal(t, StatusReceived, st.Status)
	require.NotNil(t, st.Weapon)
	assert.Equal(t, "Uncommon Laser Pistol", st.Weapon.Name)
	assert.True(t, st.Weapon.IsReceived)
	assert.Equal(t, 1, rec.count())
}

func TestServeWebSocket_StopCommand(t *testing.T) {
	rec := &acceptRecorder{}
	conn := dial(t, newScanServer(t, rec))

	assert.Equal(t, StatusScanning, readStatus(t, conn).Status)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("stop")))
	assert.Equal(t, StatusStopped, readStatus(t, conn).Status)
	assert.Zero(t, rec.count())
}

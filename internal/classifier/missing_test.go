package classifier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
)

func key(n int) models.RecordKey {
	return models.RecordKey{DocumentKey: "DOC", EntryID: fmt.Sprintf("%d", n)}
}

func TestMissingCounteragentsSampleCap(t *testing.T) {
	m := NewMissingCounteragents()
	for i := 0; i < 5; i++ {
		m.Add("05555555555", key(i))
	}

	ranked := m.Ranked()
	require.Len(t, ranked, 1)
	assert.Equal(t, 5, ranked[0].Count)
	assert.Equal(t, []string{"DOC/0", "DOC/1", "DOC/2"}, ranked[0].SampleKeys)
}

func TestMissingCounteragentsRanking(t *testing.T) {
	m := NewMissingCounteragents()
	m.Add("02222222222", key(1))
	m.Add("01111111111", key(2))
	m.Add("02222222222", key(3))
	m.Add("03333333333", key(4))
	m.Add("01111111111", key(5))
	m.Add("02222222222", key(6))

	ranked := m.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, models.Inn("02222222222"), ranked[0].Inn)
	assert.Equal(t, 3, ranked[0].Count)
	assert.Equal(t, models.Inn("01111111111"), ranked[1].Inn)
	assert.Equal(t, models.Inn("03333333333"), ranked[2].Inn)

	top := m.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, models.Inn("02222222222"), top[0].Inn)
}

func TestMissingCounteragentsTieBreaksOnInn(t *testing.T) {
	m := NewMissingCounteragents()
	m.Add("09999999999", key(1))
	m.Add("01111111111", key(2))

	ranked := m.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, models.Inn("01111111111"), ranked[0].Inn)
}

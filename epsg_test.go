package proj

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	defs  map[int]string
	calls int
	err   error
}

func (f *fakeResolver) Fetch(code int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	s, ok := f.defs[code]
	if !ok {
		return "", errors.Wrapf(ErrUnknownEPSG, "code %d", code)
	}
	return s, nil
}

func TestEPSGBuiltinTable(t *testing.T) {
	for _, code := range []int{4326, 4269, 3857, 3395, 27700, 2154, 25832, 32601, 32660, 32701, 32760} {
		_, ok := epsgLookup(code)
		assert.True(t, ok, "EPSG:%d", code)
	}
	_, ok := epsgLookup(32661) // polar stereographic, not a UTM zone
	assert.False(t, ok)
	_, ok = epsgLookup(32600)
	assert.False(t, ok)
}

func TestEPSGRemoteResolver(t *testing.T) {
	defer SetEPSGResolver(nil)

	t.Run("miss without resolver", func(t *testing.T) {
		SetEPSGResolver(nil)
		_, err := ParseDefinition("EPSG:94326")
		assert.ErrorIs(t, err, ErrEPSGUnresolved)
	})

	t.Run("resolver answers and is memoized", func(t *testing.T) {
		fake := &fakeResolver{defs: map[int]string{
			94001: "+proj=merc +ellps=WGS84 +no_defs",
		}}
		SetEPSGResolver(fake)

		def, err := ParseDefinition("EPSG:94001")
		assert.NoError(t, err)
		assert.Equal(t, "merc", def.ProjName)
		assert.Equal(t, 1, fake.calls)

		_, err = ParseDefinition("EPSG:94001")
		assert.NoError(t, err)
		assert.Equal(t, 1, fake.calls, "second lookup must come from the memo")
	})

	t.Run("builtin table wins over the resolver", func(t *testing.T) {
		fake := &fakeResolver{defs: map[int]string{
			4326: "+proj=merc +ellps=WGS84 +no_defs", // a lie the table must shadow
		}}
		SetEPSGResolver(fake)
		def, err := ParseDefinition("EPSG:4326")
		assert.NoError(t, err)
		assert.Equal(t, "longlat", def.ProjName)
		assert.Equal(t, 0, fake.calls)
	})

	t.Run("unknown code surfaces as unresolved", func(t *testing.T) {
		fake := &fakeResolver{defs: map[int]string{}}
		SetEPSGResolver(fake)
		_, err := ParseDefinition("EPSG:94999")
		assert.ErrorIs(t, err, ErrEPSGUnresolved)
	})

	t.Run("network failure surfaces as unavailable", func(t *testing.T) {
		fake := &fakeResolver{err: errors.Wrap(ErrNetworkUnavailable, "connection refused")}
		SetEPSGResolver(fake)
		_, err := ParseDefinition("EPSG:94998")
		assert.ErrorIs(t, err, ErrNetworkUnavailable)
	})
}

func TestEPSGResolverReturnsWKT(t *testing.T) {
	defer SetEPSGResolver(nil)
	fake := &fakeResolver{defs: map[int]string{
		94002: wkt1UTM19,
	}}
	SetEPSGResolver(fake)
	def, err := ParseDefinition("EPSG:94002")
	assert.NoError(t, err)
	assert.Equal(t, "tmerc", def.ProjName)
	assert.Equal(t, "EPSG:94002", def.SRSCode)
}

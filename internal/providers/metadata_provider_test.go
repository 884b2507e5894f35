package providers

import (
	"reviewreminder/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppMetadata() structures.AppMetadata {
	return structures.AppMetadata{
		Info: map[string]string{
			structures.VersionTypeBundle:      " 412 ",
			structures.VersionTypeShortString: "2.3.0",
			"CFBundleName":                    "notes",
		},
	}
}

func TestMetadataProvider_CurrentVersion(t *testing.T) {
	mp, err := NewMetadataProviderFor(testAppMetadata())
	require.NoError(t, err)

	assert.Equal(t, "412", mp.CurrentVersion(structures.VersionTypeBundle))
	assert.Equal(t, "2.3.0", mp.CurrentVersion(structures.VersionTypeShortString))
	assert.Equal(t, "", mp.CurrentVersion("CFBundleIdentifier"))
}

func TestMetadataProvider_AppNameFallbacks(t *testing.T) {
	app := testAppMetadata()
	mp, err := NewMetadataProviderFor(app)
	require.NoError(t, err)
	assert.Equal(t, "notes", mp.CurrentAppName())

	app.Info["CFBundleDisplayName"] = "Notes"
	mp, _ = NewMetadataProviderFor(app)
	assert.Equal(t, "Notes", mp.CurrentAppName())

	app.LocalizedInfo = map[string]string{"CFBundleDisplayName": "Notizen"}
	mp, _ = NewMetadataProviderFor(app)
	assert.Equal(t, "Notizen", mp.CurrentAppName())
}

func TestMetadataProvider_EnglishDefaults(t *testing.T) {
	mp, err := NewMetadataProviderFor(testAppMetadata())
	require.NoError(t, err)

	assert.Equal(t, "Rate Notes", mp.LocalizedString(StringRateTitle, "Notes", false))
	assert.Equal(t, "No, Thanks", mp.LocalizedString(StringDecline, "Notes", false))
	assert.Equal(t, "Remind me later", mp.LocalizedString(StringRemindLater, "Notes", false))
	assert.Contains(t, mp.LocalizedString(StringMessage, "Notes", false), "If you enjoy using Notes,")
}

func TestMetadataProvider_Translations(t *testing.T) {
	tests := []struct {
		locale  string
		title   string
		decline string
	}{
		{"fr", "Noter Notes", "Non, merci"},
		{"de-AT", "Notes bewerten", "Nein, danke"},
		{"es", "Valorar Notes", "No, gracias"},
		{"ja", "Rate Notes", "No, Thanks"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			app := testAppMetadata()
			app.Locale = tt.locale
			mp, err := NewMetadataProviderFor(app)
			require.NoError(t, err)

			assert.Equal(t, tt.title, mp.LocalizedString(StringRateTitle, "Notes", false))
			assert.Equal(t, tt.decline, mp.LocalizedString(StringDecline, "Notes", false))
		})
	}
}

func TestMetadataProvider_InvalidLocale(t *testing.T) {
	app := testAppMetadata()
	app.Locale = "not a locale!"
	_, err := NewMetadataProviderFor(app)
	assert.Error(t, err)
}

func TestMetadataProvider_HostStringsNeedMainBundle(t *testing.T) {
	app := testAppMetadata()
	app.Strings = map[string]string{
		StringRateTitle: "Love %s? Rate it",
		StringDecline:   "Nope",
	}

	mp, err := NewMetadataProviderFor(app)
	require.NoError(t, err)
	assert.Equal(t, "Rate Notes", mp.LocalizedString(StringRateTitle, "Notes", false))
	assert.Equal(t, "No, Thanks", mp.LocalizedString(StringDecline, "Notes", false))

	assert.Equal(t, "Love Notes? Rate it", mp.LocalizedString(StringRateTitle, "Notes", true))
	assert.Equal(t, "Nope", mp.LocalizedString(StringDecline, "Notes", true))
	assert.Equal(t, "Remind me later", mp.LocalizedString(StringRemindLater, "Notes", true))
}

func TestNewMetadataProvider_UsesAppSection(t *testing.T) {
	conf := &structures.Config{App: testAppMetadata()}
	mp, err := NewMetadataProvider(conf)
	require.NoError(t, err)
	assert.Equal(t, "412", mp.CurrentVersion(structures.VersionTypeBundle))
}

func TestMetadataProvider_KeysAreCaseInsensitive(t *testing.T) {
	app := structures.AppMetadata{
		Info:    map[string]string{"cfbundleversion": "88", "cfbundlename": "notes"},
		Strings: map[string]string{"no, thanks": "Never"},
	}
	mp, err := NewMetadataProviderFor(app)
	require.NoError(t, err)

	assert.Equal(t, "88", mp.CurrentVersion(structures.VersionTypeBundle))
	assert.Equal(t, "notes", mp.CurrentAppName())
	assert.Equal(t, "Never", mp.LocalizedString(StringDecline, "notes", true))
}

package providers

import (
	"fmt"
	"reviewreminder/internal/structures"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Default alert string keys. Keys double as the English text.
const (
	StringRateTitle   = "Rate %s"
	StringMessage     = "If you enjoy using %s, would you mind taking a moment to rate it? It won't take more than a minute. Thanks for your support!"
	StringDecline     = "No, Thanks"
	StringRemindLater = "Remind me later"
)

const (
	infoDisplayName = "CFBundleDisplayName"
	infoBundleName  = "CFBundleName"
)

// supportedLocales lists the bundled translations; the first entry is the fallback.
var supportedLocales = []language.Tag{language.English, language.French, language.German, language.Spanish}

var translations = map[language.Tag]map[string]string{
	language.English: {
		StringRateTitle:   StringRateTitle,
		StringMessage:     StringMessage,
		StringDecline:     StringDecline,
		StringRemindLater: StringRemindLater,
	},
	language.French: {
		StringRateTitle:   "Noter %s",
		StringMessage:     "Si vous aimez utiliser %s, pourriez-vous prendre un moment pour l'évaluer ? Cela ne prendra pas plus d'une minute. Merci pour votre soutien !",
		StringDecline:     "Non, merci",
		StringRemindLater: "Me le rappeler plus tard",
	},
	language.German: {
		StringRateTitle:   "%s bewerten",
		StringMessage:     "Wenn dir %s gefällt, würdest du dir einen Moment Zeit nehmen, um es zu bewerten? Es dauert nicht länger als eine Minute. Danke für deine Unterstützung!",
		StringDecline:     "Nein, danke",
		StringRemindLater: "Später erinnern",
	},
	language.Spanish: {
		StringRateTitle:   "Valorar %s",
		StringMessage:     "Si te gusta usar %s, ¿te importaría tomarte un momento para valorarla? No te llevará más de un minuto. ¡Gracias por tu apoyo!",
		StringDecline:     "No, gracias",
		StringRemindLater: "Recordármelo más tarde",
	},
}

func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: %w", tag, err)
			}
		}
	}
	return b, nil
}

// MetadataProvider answers bundle questions from the configured info
// dictionaries and renders alert strings for the configured locale.
type MetadataProvider struct {
	info          map[string]string
	localizedInfo map[string]string
	hostStrings   map[string]string
	printer       *message.Printer
}

func NewMetadataProvider(conf *structures.Config) (*MetadataProvider, error) {
	return NewMetadataProviderFor(conf.App)
}

func NewMetadataProviderFor(app structures.AppMetadata) (*MetadataProvider, error) {
	cat, err := buildCatalog()
	if err != nil {
		return nil, err
	}

	tag := language.English
	if app.Locale != "" {
		requested, err := language.Parse(app.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", app.Locale, err)
		}
		_, idx, _ := language.NewMatcher(supportedLocales).Match(requested)
		tag = supportedLocales[idx]
	}

	return &MetadataProvider{
		info:          foldKeys(app.Info),
		localizedInfo: foldKeys(app.LocalizedInfo),
		hostStrings:   foldKeys(app.Strings),
		printer:       message.NewPrinter(tag, message.Catalog(cat)),
	}, nil
}

// foldKeys lowercases map keys; viper folds config keys the same way.
func foldKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}

func (mp *MetadataProvider) CurrentVersion(selector string) string {
	return strings.TrimSpace(mp.info[strings.ToLower(selector)])
}

func (mp *MetadataProvider) CurrentAppName() string {
	if name := mp.localizedInfo[strings.ToLower(infoDisplayName)]; name != "" {
		return name
	}
	if name := mp.info[strings.ToLower(infoDisplayName)]; name != "" {
		return name
	}
	return mp.info[strings.ToLower(infoBundleName)]
}

// LocalizedString renders key with appName substituted when the key carries a
// placeholder. With useMainBundle the host string table wins over the catalog.
func (mp *MetadataProvider) LocalizedString(key, appName string, useMainBundle bool) string {
	formatted := strings.Contains(key, "%s")

	if useMainBundle {
		if custom, ok := mp.hostStrings[strings.ToLower(key)]; ok && custom != "" {
			if strings.Contains(custom, "%s") {
				return fmt.Sprintf(custom, appName)
			}
			return custom
		}
	}

	if formatted {
		return mp.printer.Sprintf(key, appName)
	}
	return mp.printer.Sprintf(key)
}

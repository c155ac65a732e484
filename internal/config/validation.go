package config

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"git.home.luguber.info/inful/doctags/internal/textenc"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DocsDir, validation.Required),
		validation.Field(&c.SiteDir, validation.Required),
	); err != nil {
		return err
	}
	return c.Tags.Validate()
}

// Validate validates the tags options.
func (c *TagsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Encoding, validation.By(knownEncoding)),
		validation.Field(&c.Names, validation.By(nonEmptyNames)),
	)
}

func knownEncoding(value any) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if _, err := textenc.Lookup(name); err != nil {
		return errors.New("unknown encoding")
	}
	return nil
}

// nonEmptyNames rejects blank category names. Repeated names are allowed;
// the page is generated again and overwritten.
func nonEmptyNames(value any) error {
	names, _ := value.([]string)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return errors.New("must not contain empty names")
		}
	}
	return nil
}

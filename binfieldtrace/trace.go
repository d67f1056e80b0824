// Package binfieldtrace adds optional debug logging around individual
// binfield.Field values through a package-level logrus.FieldLogger: a default no-op-ish logger is installed at init time
// and callers may swap it for their own via SetLogger.
package binfieldtrace

import (
	"github.com/aldas/go-binfield"
	"github.com/sirupsen/logrus"
)

var log logrus.FieldLogger

func init() {
	// Give a default logger at the start to avoid a nil pointer error.
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	log = l
}

// SetLogger replaces the package-level logger used by Field.
func SetLogger(logger logrus.FieldLogger) {
	log = logger
}

// Field wraps inner so that every parsed or written value, and every
// error, is logged at debug level tagged with name. Wrap the fields that
// matter during development; leave the rest alone.
//
// Wrapping opts a field out of the auto-override protocol: the schema's
// wiring pass type-switches on the concrete field placed in the schema, and
// tracedField does not forward that. Do not wrap a field that is itself an
// auto-override source (e.g. a BytesField with a name-referenced Length) or
// the sibling target of one (the length/count field it references).
func Field(name string, inner binfield.Field) binfield.Field {
	return &tracedField{name: name, inner: inner}
}

type tracedField struct {
	name  string
	inner binfield.Field
}

func (f *tracedField) Parse(bs *binfield.BitStream, ctx *binfield.Context) (binfield.Value, error) {
	v, err := f.inner.Parse(bs, ctx)
	if err != nil {
		log.WithField("field", f.name).WithError(err).Debug("binfield: parse failed")
		return v, err
	}
	log.WithField("field", f.name).WithField("value", v).Debug("binfield: parsed")
	return v, nil
}

func (f *tracedField) Write(bs *binfield.BitStream, ctx *binfield.Context, value binfield.Value) error {
	err := f.inner.Write(bs, ctx, value)
	if err != nil {
		log.WithField("field", f.name).WithError(err).Debug("binfield: write failed")
		return err
	}
	log.WithField("field", f.name).WithField("value", value).Debug("binfield: wrote")
	return nil
}

func (f *tracedField) Default(ctx *binfield.Context) (binfield.Value, bool, error) {
	return f.inner.Default(ctx)
}

func (f *tracedField) Override(ctx *binfield.Context, current binfield.Value) (binfield.Value, bool, error) {
	return f.inner.Override(ctx, current)
}

package importer

import (
	"io"

	"dayssince/internal/ical"
	"dayssince/internal/storage"
)

// ICSImporter reads iCalendar files. A yearly RRULE turns on the
// anniversary countdown; due-date events written by our own export are
// skipped since the anchor event carries the due days.
type ICSImporter struct{}

func (i *ICSImporter) Name() string {
	return "ics"
}

func (i *ICSImporter) Import(r io.Reader, store *storage.Store) (*ImportResult, error) {
	p, err := i.parse(r)
	if err != nil {
		return nil, err
	}
	return addAll(p, store, i.Name()), nil
}

func (i *ICSImporter) Preview(r io.Reader) ([]storage.EventInput, error) {
	p, err := i.parse(r)
	if err != nil {
		return nil, err
	}
	return p.inputs, nil
}

func (i *ICSImporter) parse(r io.Reader) (parsed, error) {
	decoded, errs, err := ical.Decode(r)
	if err != nil {
		return parsed{}, err
	}

	var p parsed
	for _, d := range decoded {
		p.inputs = append(p.inputs, d.Input)
	}
	for _, e := range errs {
		p.errors = append(p.errors, e.Error())
	}
	return p, nil
}

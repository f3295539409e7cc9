package cli

import "fmt"

type unknownCollectionError struct {
	name string
}

func (e unknownCollectionError) Error() string {
	return fmt.Sprintf("unknown list: %q (want available|selected, or cart)", e.name)
}

func errUnknownCollection(name string) error {
	return unknownCollectionError{name: name}
}

type noJournalError struct{}

func (noJournalError) Error() string {
	return "no journal file configured; pass --journal <path> or set \"journal\" in config.json"
}

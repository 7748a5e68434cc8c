package interpret

import "errors"

// ErrMissingCredential reports that no interpreter credential is
// configured. It is the only interpretation failure surfaced to the
// caller: the right reaction is prompting for key setup, not retrying.
var ErrMissingCredential = errors.New("interpret: interpreter credential missing")

// ErrBusy reports that an utterance is already in flight. Callers are
// expected to serialize submissions; the guard only prevents the state
// machine from re-entering a pending interpretation.
var ErrBusy = errors.New("interpret: interpretation already in flight")

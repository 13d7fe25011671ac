package extract

import "errors"

// ErrUndeterminedLiteral indicates the model left a literal the extractor
// needed at X (unassigned), which should not happen for any literal inside
// a satisfied cone — it signals a cone/model mismatch.
var ErrUndeterminedLiteral = errors.New("extract: literal undetermined in model")

package instrument

// ReservedLabelPrefix is the literal token that marks a label as
// user-synthetic (spec §6). Statements carrying a label beginning with
// this prefix are excluded from numbering and the label is stripped
// from the instrumented output.
const ReservedLabelPrefix = "claire"

package cast

// LocationMap holds sid -> Pos, produced only when --loc is requested
// (spec §3, §6). The variant line localization scheme consults it to
// resolve source lines to sids; location-tagged trace records take
// their positions from Stmt.Pos, not from this map.
type LocationMap map[Sid]Pos

// NewLocationMap returns an empty map.
func NewLocationMap() LocationMap {
	return make(LocationMap)
}

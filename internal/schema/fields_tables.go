package schema

// routeNameFields expands the repeating rtename{1..4}{en,fr} /
// rtnumber{1..5} pattern shared by roadseg and ferryseg (spec.md §3).
func routeNameFields() []FieldSpec {
	var fs []FieldSpec
	for i := 1; i <= 4; i++ {
		fs = append(fs, field(nthRteName(i, "en"), FieldString))
		fs = append(fs, field(nthRteName(i, "fr"), FieldString))
	}
	for i := 1; i <= 5; i++ {
		fs = append(fs, field(nthRteNumber(i), FieldString))
	}
	return fs
}

func nthRteName(i int, lang string) string {
	return "rtename" + itoa(i) + lang
}

func nthRteNumber(i int) string {
	return "rtnumber" + itoa(i)
}

func itoa(i int) string {
	// Small closed range (1-5); avoid pulling in strconv for a single digit.
	digits := "0123456789"
	if i < 0 || i > 9 {
		return "?"
	}
	return string(digits[i])
}

func (r *Registry) registerRoadseg() {
	fields := []FieldSpec{
		domainField("roadclass", FieldString, "roadclass"),
		field("adrangenid", FieldString),
		field("l_placenam", FieldString),
		field("r_placenam", FieldString),
		field("l_stname_c", FieldString),
		field("r_stname_c", FieldString),
		domainField("structtype", FieldString, "structtype"),
		domainField("trafficdir", FieldString, "trafficdir"),
		domainField("pavsurf", FieldString, "pavsurf"),
		domainField("pavstatus", FieldString, "pavstatus"),
		domainField("unpavsurf", FieldString, "unpavsurf"),
		field("speed", FieldInteger),
		field("nbrlanes", FieldInteger),
		domainField("closing", FieldString, "closing"),
		field("exitnbr", FieldString),
		field("roadsegid", FieldInteger),
		domainField("metacover", FieldString, "metacover"),
		domainField("provider", FieldString, "provider"),
	}
	fields = append(fields, routeNameFields()...)
	r.register(TableRoadseg, fields...)
}

func (r *Registry) registerFerryseg() {
	fields := []FieldSpec{
		domainField("closing", FieldString, "closing"),
		field("ferrysegid", FieldInteger),
		domainField("metacover", FieldString, "metacover"),
		domainField("provider", FieldString, "provider"),
	}
	fields = append(fields, routeNameFields()...)
	r.register(TableFerryseg, fields...)
}

func (r *Registry) registerJunction() {
	r.register(TableJunction,
		domainField("junctype", FieldString, "junctype"),
		field("exitnbr", FieldString),
		field("accuracy", FieldInteger),
		domainField("metacover", FieldString, "metacover"),
		domainField("provider", FieldString, "provider"),
	)
}

func (r *Registry) registerBlkpassage() {
	r.register(TableBlkpassage,
		domainField("blkpassty", FieldString, "blkpassty"),
		field("roadnid", FieldString),
	)
}

func (r *Registry) registerTollpoint() {
	r.register(TableTollpoint,
		domainField("tollpttype", FieldString, "tollpttype"),
		field("roadnid", FieldString),
	)
}

func (r *Registry) registerAddrange() {
	r.register(TableAddrange,
		field("l_hnumf", FieldString),
		field("r_hnumf", FieldString),
		field("l_hnuml", FieldString),
		field("r_hnuml", FieldString),
		domainField("l_hnumsuf", FieldString, "hnumsuf"),
		domainField("r_hnumsuf", FieldString, "hnumsuf"),
		domainField("l_hnumtypf", FieldString, "hnumtype"),
		domainField("r_hnumtypf", FieldString, "hnumtype"),
		domainField("l_hnumtypl", FieldString, "hnumtype"),
		domainField("r_hnumtypl", FieldString, "hnumtype"),
		domainField("l_rfsysind", FieldString, "rfsystem"),
		domainField("r_rfsysind", FieldString, "rfsystem"),
		domainField("digdirfg", FieldString, "digdir"),
		field("l_offnanid", FieldString),
		field("r_offnanid", FieldString),
		field("l_altnamnid", FieldString),
		field("r_altnamnid", FieldString),
	)
}

func (r *Registry) registerAltnamlink() {
	r.register(TableAltnamlink,
		field("strnamenid", FieldString),
	)
}

func (r *Registry) registerStrplaname() {
	r.register(TableStrplaname,
		domainField("dirprefix", FieldString, "muniquad"),
		field("namebody", FieldString),
		domainField("strtypre", FieldString, "strtype"),
		domainField("strtysuf", FieldString, "strtype"),
		domainField("dirsuffix", FieldString, "muniquad"),
		field("placename", FieldString),
		domainField("placetype", FieldString, "placetype"),
		field("province", FieldString),
		domainField("starticle", FieldString, "starticle"),
	)
}

package page

// DefaultTemplate returns the built-in marketing page. Region ids are the
// stable anchors edits are captured against; ids must stay unchanged across
// deploys or stored snapshots stop matching.
func DefaultTemplate() *Template {
	return &Template{
		Title: "Zrasti.si | Psihološko svetovanje",
		Regions: []TemplateRegion{
			{ID: "title", Tag: "h1", DefaultText: "Zrasti.si"},
			{ID: "hero", Tag: "p", DefaultText: "Osvobodite se stresa, tesnobe, depresije in omogočite pozitivne spremembe v vašem življenju!"},
			{ID: "psiholosko-svetovanje", Tag: "h2", DefaultText: "Kaj je psihološko svetovanje?"},
			{ID: "online-psiholosko-svetovanje", Tag: "h2", DefaultText: "Kaj pa je online psihološko svetovanje?"},
			{ID: "cas-za-spremembo", Tag: "h2", DefaultText: "ALI JE ČAS ZA SPREMEMBO?"},
			{ID: "po-svetovanju", Tag: "h2", DefaultText: "Po svetovanju"},
			{ID: "kontakt", Tag: "h2", DefaultText: "Kontakt"},
		},
	}
}

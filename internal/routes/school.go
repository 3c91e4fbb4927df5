package routes

func SchoolRoutes() []Route {
	return []Route{
		{
			Path:      "/school",
			Name:      "School",
			Component: Lazy("views/school/index.vue"),
			Meta: Meta{
				Title: "学校管理",
				Icon:  "BookOutlined",
			},
		},
	}
}

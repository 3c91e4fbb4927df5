package routes

// SystemRoutes lives under /system so that the system school page does not
// share /school with the school module.
func SystemRoutes() []Route {
	return []Route{
		{
			Path:      "/system/school",
			Name:      "SystemSchool",
			Component: Lazy("views/system/school/index.vue"),
			Meta: Meta{
				Title: "学校管理",
				Icon:  "BookOutlined",
			},
		},
	}
}

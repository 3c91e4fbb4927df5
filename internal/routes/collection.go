package routes

func CollectionRoutes() []Route {
	return []Route{
		{
			Path:      "/collection",
			Name:      "Collection",
			Component: Lazy("views/collection/collection.vue"),
			Meta: Meta{
				Title: "文件夹管理",
				Icon:  "FolderAddOutlined",
			},
		},
	}
}

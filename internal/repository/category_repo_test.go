package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ebay_console_v1_202609/internal/model"
)

func setupCategoryDB(t *testing.T) CategoryRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Category{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewCategoryRepository(db)
}

func TestCategoryRepo_CreateAndGet(t *testing.T) {
	repo := setupCategoryDB(t)
	ctx := context.Background()

	category := &model.Category{
		EbayCategoryID: "177",
		Name:           "PC Laptops & Netbooks",
		Path:           "Computers > Laptops > PC Laptops & Netbooks",
		IsLeaf:         true,
	}
	if err := repo.Create(ctx, category); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if category.ID == 0 {
		t.Fatal("创建后应回填 ID")
	}

	found, err := repo.GetByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if found.Name != "PC Laptops & Netbooks" || !found.IsLeaf {
		t.Errorf("查询结果错误: %+v", found)
	}
}

// 未找到时返回 (nil, nil)，导入前置查重依赖该契约
func TestCategoryRepo_GetByEbayIDNotFound(t *testing.T) {
	repo := setupCategoryDB(t)

	found, err := repo.GetByEbayID(context.Background(), "99999")
	if err != nil {
		t.Fatalf("未找到不应返回错误: %v", err)
	}
	if found != nil {
		t.Errorf("未找到应返回 nil: got %+v", found)
	}
}

func TestCategoryRepo_GetByEbayID(t *testing.T) {
	repo := setupCategoryDB(t)
	ctx := context.Background()

	repo.Create(ctx, &model.Category{EbayCategoryID: "177", Name: "Laptops"})

	found, err := repo.GetByEbayID(ctx, "177")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if found == nil || found.Name != "Laptops" {
		t.Errorf("查询结果错误: %+v", found)
	}
}

// 列表按路径排序，输出天然呈树形
func TestCategoryRepo_ListOrderedByPath(t *testing.T) {
	repo := setupCategoryDB(t)
	ctx := context.Background()

	repo.Create(ctx, &model.Category{Name: "Laptops", Path: "Electronics > Computers > Laptops"})
	repo.Create(ctx, &model.Category{Name: "Electronics", Path: "Electronics"})
	repo.Create(ctx, &model.Category{Name: "Computers", Path: "Electronics > Computers"})

	categories, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("列表失败: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("数量错误: got %d", len(categories))
	}
	expected := []string{"Electronics", "Computers", "Laptops"}
	for i, name := range expected {
		if categories[i].Name != name {
			t.Errorf("第 %d 项应为 %s: got %s", i, name, categories[i].Name)
		}
	}
}

func TestCategoryRepo_ListByParent(t *testing.T) {
	repo := setupCategoryDB(t)
	ctx := context.Background()

	parent := &model.Category{Name: "Electronics", Path: "Electronics"}
	repo.Create(ctx, parent)
	repo.Create(ctx, &model.Category{Name: "Phones", ParentID: parent.ID})
	repo.Create(ctx, &model.Category{Name: "Computers", ParentID: parent.ID})
	repo.Create(ctx, &model.Category{Name: "Other Root"})

	children, err := repo.ListByParent(ctx, parent.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("子类目数量错误: got %d", len(children))
	}
	// 按名称排序
	if children[0].Name != "Computers" || children[1].Name != "Phones" {
		t.Errorf("子类目排序错误: %v, %v", children[0].Name, children[1].Name)
	}
}

func TestCategoryRepo_UpdateAndDelete(t *testing.T) {
	repo := setupCategoryDB(t)
	ctx := context.Background()

	category := &model.Category{Name: "Old", Path: "Old"}
	repo.Create(ctx, category)

	category.Name = "New"
	category.Path = "New"
	if err := repo.Update(ctx, category); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	found, _ := repo.GetByID(ctx, category.ID)
	if found.Name != "New" {
		t.Errorf("更新未生效: got %s", found.Name)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := repo.GetByID(ctx, category.ID); err == nil {
		t.Error("删除后查询应报错")
	}
}

package seed

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lounwb/AirCourse/internal/domain"
	"github.com/Lounwb/AirCourse/internal/repository"
	"github.com/Lounwb/AirCourse/internal/utils"
)

// 内置校区数据，作息时间来自各校教务处公开的作息时间表。
// 没有列作息时间的校区使用默认节次表。
var builtinCampuses = []struct {
	DisplayName string
	Address     string
	ClassTimes  []domain.ClassTime
}{
	{
		DisplayName: "中山大学 广州校区南校园",
		Address:     "广州市海珠区新港西路135号",
		ClassTimes: []domain.ClassTime{
			{Start: "08:00", End: "08:45"},
			{Start: "08:55", End: "09:40"},
			{Start: "10:10", End: "10:55"},
			{Start: "11:05", End: "11:50"},
			{Start: "14:10", End: "14:55"},
			{Start: "15:05", End: "15:50"},
			{Start: "16:20", End: "17:05"},
			{Start: "17:15", End: "18:00"},
			{Start: "19:10", End: "19:55"},
			{Start: "20:05", End: "20:50"},
			{Start: "21:00", End: "21:45"},
		},
	},
	{
		DisplayName: "华南理工大学 五山校区",
		Address:     "广州市天河区五山路381号",
		ClassTimes: []domain.ClassTime{
			{Start: "08:00", End: "08:45"},
			{Start: "08:55", End: "09:40"},
			{Start: "10:10", End: "10:55"},
			{Start: "11:05", End: "11:50"},
			{Start: "14:00", End: "14:45"},
			{Start: "14:55", End: "15:40"},
			{Start: "16:10", End: "16:55"},
			{Start: "17:05", End: "17:50"},
			{Start: "19:00", End: "19:45"},
			{Start: "19:55", End: "20:40"},
			{Start: "20:50", End: "21:35"},
		},
	},
	{
		DisplayName: "清华大学",
		Address:     "北京市海淀区清华园1号",
		ClassTimes: []domain.ClassTime{
			{Start: "08:00", End: "08:45"},
			{Start: "08:50", End: "09:35"},
			{Start: "09:50", End: "10:35"},
			{Start: "10:40", End: "11:25"},
			{Start: "11:30", End: "12:15"},
			{Start: "13:30", End: "14:15"},
			{Start: "14:20", End: "15:05"},
			{Start: "15:20", End: "16:05"},
			{Start: "16:10", End: "16:55"},
			{Start: "17:05", End: "17:50"},
			{Start: "17:55", End: "18:40"},
			{Start: "19:20", End: "20:05"},
			{Start: "20:10", End: "20:55"},
			{Start: "21:00", End: "21:45"},
		},
	},
	{
		DisplayName: "北京大学",
		Address:     "北京市海淀区颐和园路5号",
		ClassTimes: []domain.ClassTime{
			{Start: "08:00", End: "08:50"},
			{Start: "09:00", End: "09:50"},
			{Start: "10:10", End: "11:00"},
			{Start: "11:10", End: "12:00"},
			{Start: "13:00", End: "13:50"},
			{Start: "14:00", End: "14:50"},
			{Start: "15:10", End: "16:00"},
			{Start: "16:10", End: "17:00"},
			{Start: "17:10", End: "18:00"},
			{Start: "18:40", End: "19:30"},
			{Start: "19:40", End: "20:30"},
			{Start: "20:40", End: "21:30"},
		},
	},
	{
		DisplayName: "复旦大学 邯郸校区",
		Address:     "上海市杨浦区邯郸路220号",
		ClassTimes: []domain.ClassTime{
			{Start: "08:00", End: "08:45"},
			{Start: "08:55", End: "09:40"},
			{Start: "09:55", End: "10:40"},
			{Start: "10:50", End: "11:35"},
			{Start: "11:45", End: "12:30"},
			{Start: "13:30", End: "14:15"},
			{Start: "14:25", End: "15:10"},
			{Start: "15:25", End: "16:10"},
			{Start: "16:20", End: "17:05"},
			{Start: "17:15", End: "18:00"},
			{Start: "18:30", End: "19:15"},
			{Start: "19:25", End: "20:10"},
			{Start: "20:20", End: "21:05"},
		},
	},
	{
		DisplayName: "浙江大学 紫金港校区",
		Address:     "杭州市西湖区余杭塘路866号",
	},
	{
		DisplayName: "武汉大学",
		Address:     "武汉市武昌区八一路299号",
	},
	{
		DisplayName: "华东师范大学 普陀校区",
		Address:     "上海市普陀区中山北路3663号",
	},
}

// SeedCampuses 把内置校区写入数据库，已存在的校区跳过
func SeedCampuses(r *repository.Repository) {
	inserted := 0
	for _, c := range builtinCampuses {
		pinyinKey, pinyinAbbr := utils.SearchKeys(c.DisplayName)
		campus := &domain.Campus{
			DisplayName: c.DisplayName,
			Address:     c.Address,
			PinyinKey:   pinyinKey,
			PinyinAbbr:  pinyinAbbr,
			ClassTimes:  c.ClassTimes,
		}

		if err := r.CreateCampus(campus); err != nil {
			var pgErr *pgconn.PgError
			switch {
			case errors.As(err, &pgErr) && pgErr.ConstraintName == "campuses_display_name_key":
				// 已经插入过了，跳过
			default:
				slog.Error("插入校区失败", "campus", c.DisplayName, "error", err)
			}
			continue
		}

		inserted++
	}

	slog.Info("插入校区数据完成", "inserted", inserted, "total", len(builtinCampuses))
}

package domain

// 顾问实例：效果定义在 gameconfig/advisor 目录表里，实例只挂 cfgId。
// 一个顾问只属于一个帝国，draft 时创建，解雇即销毁。
type Advisor struct {
	Id     int64  `json:"id"`
	CfgId  int    `json:"cfgId"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

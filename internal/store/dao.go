package store

import (
	"fmt"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
	"time"
)

type UpdateDao interface {
	SaveRun(run *Run) (uint, error)
	// 永久删除before之前保存的结果
	RemoveRunsBefore(before time.Time) error
}

type QueryDao interface {
	QueryRun(id uint) (*Run, error)
	QueryRunsByFold(fold string) ([]*Run, error)
}

type Dao interface {
	DB() *gorm.DB
	UpdateDao
	QueryDao
}

type daoImpl struct {
	db     *gorm.DB
	logger *log.Logger
}

var _ Dao = &daoImpl{}

// NewDao 连接dsn指定的MySQL数据库并创建表格。dsn格式为user:password@tcp(host:port)/dbname?parseTime=True
func NewDao(dsn string, verbose bool) (Dao, error) {
	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: level,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	err = db.AutoMigrate(&SelectionRunDO{}, &SelectionRowDO{})
	if err != nil {
		return nil, errors.Wrap(err, "创建表格时出现异常")
	}

	return newDao(db), nil
}

func newDao(db *gorm.DB) *daoImpl {
	return &daoImpl{
		db:     db,
		logger: log.New(os.Stdout, "Dao: ", log.LstdFlags|log.Lshortfile|log.Lmsgprefix),
	}
}

func (d *daoImpl) DB() *gorm.DB {
	return d.db
}

const MaxOneRun = 5000

func (d *daoImpl) SaveRun(run *Run) (uint, error) {
	runDO := toRunDO(run)
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(runDO).Error; err != nil {
			return errors.Wrap(err, "保存SelectionRunDO出错")
		}

		rows, err := toRowDOs(runDO.ID, run)
		if err != nil {
			return err
		}
		d.logger.Printf("插入%d条SelectionRowDO到数据库，RunID为%d", len(rows), runDO.ID)
		for i := 0; i < len(rows); i += MaxOneRun {
			end := i + MaxOneRun
			if end > len(rows) {
				end = len(rows)
			}
			if err := tx.Create(rows[i:end]).Error; err != nil {
				return errors.Wrap(err, fmt.Sprintf("保存第%d到%d行出错", i, end))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return runDO.ID, nil
}

func (d *daoImpl) RemoveRunsBefore(before time.Time) error {
	ids := make([]uint, 0)
	err := d.db.Model(&SelectionRunDO{}).Unscoped().Where("created_at < ?", before).Pluck("id", &ids).Error
	if err != nil {
		return errors.Wrap(err, "查询过期结果出错")
	}
	if len(ids) == 0 {
		return nil
	}

	d.logger.Printf("删除%d条过期结果", len(ids))
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id IN ?", ids).Delete(&SelectionRowDO{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&SelectionRunDO{}).Error
	})
}

func (d *daoImpl) QueryRun(id uint) (*Run, error) {
	runDO := &SelectionRunDO{}
	err := d.db.First(runDO, id).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询SelectionRunDO出错，ID为%d", id))
	}
	return d.loadRows(runDO)
}

func (d *daoImpl) QueryRunsByFold(fold string) ([]*Run, error) {
	runDOs := make([]*SelectionRunDO, 0)
	err := d.db.Where("fold = ?", fold).Order("id asc").Find(&runDOs).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询数据折%s的结果出错", fold))
	}

	runs := make([]*Run, 0, len(runDOs))
	for _, runDO := range runDOs {
		run, err := d.loadRows(runDO)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (d *daoImpl) loadRows(runDO *SelectionRunDO) (*Run, error) {
	rows := make([]*SelectionRowDO, 0)
	err := d.db.Where("run_id = ?", runDO.ID).Order("row_num asc").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询SelectionRowDO出错，RunID为%d", runDO.ID))
	}
	return fromDO(runDO, rows)
}

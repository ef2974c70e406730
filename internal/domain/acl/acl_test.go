package acl_test

import (
	"testing"

	"github.com/openhack/arena/internal/domain/acl"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	Convey("Given the three permission variants", t, func() {
		Convey("Public allows everyone, even an empty role", func() {
			So(acl.Check(acl.Public(), acl.RoleParticipant), ShouldBeTrue)
			So(acl.Check(acl.Public(), ""), ShouldBeTrue)
		})

		Convey("Only allows exactly the named role", func() {
			p := acl.Only(acl.RoleJudge)
			So(acl.Check(p, acl.RoleJudge), ShouldBeTrue)
			So(acl.Check(p, acl.RoleAdmin), ShouldBeFalse)
			So(acl.Check(p, ""), ShouldBeFalse)
		})

		Convey("Group allows any member role", func() {
			p := acl.Group(acl.RoleAdmin, acl.RoleOrganizer)
			So(acl.Check(p, acl.RoleAdmin), ShouldBeTrue)
			So(acl.Check(p, acl.RoleOrganizer), ShouldBeTrue)
			So(acl.Check(p, acl.RoleJudge), ShouldBeFalse)
		})
	})
}

func TestDefaultTable(t *testing.T) {
	table := acl.DefaultTable()

	Convey("Given the default ACL table", t, func() {
		Convey("Then public reads are open to participants", func() {
			So(table.Allows(acl.ReadHackathonList, acl.RoleParticipant), ShouldBeTrue)
			So(table.Allows(acl.ReadHackathonInfo, ""), ShouldBeTrue)
		})

		Convey("Then hackathon management is limited to organizers", func() {
			So(table.Allows(acl.CreateHackathon, acl.RoleOrganizer), ShouldBeTrue)
			So(table.Allows(acl.CreateHackathon, acl.RoleAdmin), ShouldBeTrue)
			So(table.Allows(acl.CreateHackathon, acl.RoleJudge), ShouldBeFalse)
			So(table.Allows(acl.DeleteHackathon, acl.RoleParticipant), ShouldBeFalse)
		})

		Convey("Then only judges may create team scores", func() {
			So(table.Allows(acl.CreateTeamScore, acl.RoleJudge), ShouldBeTrue)
			So(table.Allows(acl.CreateTeamScore, acl.RoleOrganizer), ShouldBeFalse)
			So(table.Allows(acl.CreateTeamScore, acl.RoleAdmin), ShouldBeFalse)
		})

		Convey("Then privileged reads include judges", func() {
			So(table.Allows(acl.ReadTeamScores, acl.RoleJudge), ShouldBeTrue)
			So(table.Allows(acl.ReadTeamScores, acl.RoleParticipant), ShouldBeFalse)
			So(table.Allows(acl.ReadCriteria, acl.RoleJudge), ShouldBeTrue)
		})

		Convey("Then unknown actions are denied", func() {
			So(table.Allows(acl.Action("launch_rockets"), acl.RoleAdmin), ShouldBeFalse)
		})
	})
}
